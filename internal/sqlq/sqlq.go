// Package sqlq builds PostgreSQL SELECT statements from typed parts.
//
// Fragments are written with ? placeholders and carry their arguments with
// them; Build renumbers the placeholders to $1..$n in the order they appear.
// Fragment text must not contain a literal question mark.
package sqlq

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Sqlizer renders a fragment of SQL and the arguments it binds.
type Sqlizer interface {
	ToSQL() (string, []any)
}

type expr struct {
	sql  string
	args []any
}

func (e expr) ToSQL() (string, []any) { return e.sql, e.args }

// Expr wraps a fixed SQL fragment and its arguments.
func Expr(sql string, args ...any) Sqlizer {
	return expr{sql: sql, args: args}
}

// Eq renders column = value.
func Eq(column string, value any) Sqlizer { return Expr(column+" = ?", value) }

// Gt renders column > value.
func Gt(column string, value any) Sqlizer { return Expr(column+" > ?", value) }

// Gte renders column >= value.
func Gte(column string, value any) Sqlizer { return Expr(column+" >= ?", value) }

// Lt renders column < value.
func Lt(column string, value any) Sqlizer { return Expr(column+" < ?", value) }

// Lte renders column <= value.
func Lte(column string, value any) Sqlizer { return Expr(column+" <= ?", value) }

// IsNotNull renders column IS NOT NULL.
func IsNotNull(column string) Sqlizer { return Expr(column + " IS NOT NULL") }

// Any renders column = ANY(values) with values sent as a Postgres array.
func Any(column string, values any) Sqlizer {
	return Expr(column+" = ANY(?)", pq.Array(values))
}

// ILike renders a case-insensitive substring match of term against column.
// LIKE wildcards in term are escaped so they match literally.
func ILike(column, term string) Sqlizer {
	return Expr(column+" ILIKE ?", "%"+EscapeLike(term)+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE metacharacters in s using the default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type junction struct {
	op    string
	parts []Sqlizer
}

func (j junction) ToSQL() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	for _, p := range j.parts {
		if p == nil {
			continue
		}
		sql, a := p.ToSQL()
		if sql == "" {
			continue
		}
		clauses = append(clauses, sql)
		args = append(args, a...)
	}
	switch len(clauses) {
	case 0:
		return "", nil
	case 1:
		return clauses[0], args
	}
	return "(" + strings.Join(clauses, " "+j.op+" ") + ")", args
}

// And joins predicates with AND. Empty predicates are dropped.
func And(parts ...Sqlizer) Sqlizer { return junction{op: "AND", parts: parts} }

// Or joins predicates with OR. Empty predicates are dropped.
func Or(parts ...Sqlizer) Sqlizer { return junction{op: "OR", parts: parts} }

type exists struct {
	sub *SelectBuilder
}

func (e exists) ToSQL() (string, []any) {
	sql, args := e.sub.ToSQL()
	return "EXISTS (" + sql + ")", args
}

// Exists renders EXISTS (subquery).
func Exists(sub *SelectBuilder) Sqlizer { return exists{sub: sub} }

type subquery struct {
	sub   *SelectBuilder
	alias string
}

func (s subquery) ToSQL() (string, []any) {
	sql, args := s.sub.ToSQL()
	if s.alias == "" {
		return "(" + sql + ")", args
	}
	return "(" + sql + ") AS " + s.alias, args
}

// Sub renders a parenthesised scalar subquery, aliased when alias is set.
func Sub(sub *SelectBuilder, alias string) Sqlizer { return subquery{sub: sub, alias: alias} }

type join struct {
	kind  string
	table Sqlizer
	on    string
}

// SelectBuilder accumulates the clauses of a SELECT statement.
type SelectBuilder struct {
	columns []Sqlizer
	from    Sqlizer
	joins   []join
	where   []Sqlizer
	groupBy []string
	having  []Sqlizer
	orderBy []Sqlizer
	limit   *int
	offset  *int
}

// Select starts a statement with the given plain columns.
func Select(columns ...string) *SelectBuilder {
	b := &SelectBuilder{}
	return b.Columns(columns...)
}

// Columns appends plain columns.
func (b *SelectBuilder) Columns(columns ...string) *SelectBuilder {
	for _, c := range columns {
		b.columns = append(b.columns, Expr(c))
	}
	return b
}

// Column appends a column expression that may bind arguments.
func (b *SelectBuilder) Column(c Sqlizer) *SelectBuilder {
	b.columns = append(b.columns, c)
	return b
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.from = Expr(table)
	return b
}

// FromSelect selects from a derived table.
func (b *SelectBuilder) FromSelect(sub *SelectBuilder, alias string) *SelectBuilder {
	b.from = Sub(sub, alias)
	return b
}

func (b *SelectBuilder) Join(table, on string) *SelectBuilder {
	b.joins = append(b.joins, join{kind: "INNER JOIN", table: Expr(table), on: on})
	return b
}

func (b *SelectBuilder) LeftJoin(table, on string) *SelectBuilder {
	b.joins = append(b.joins, join{kind: "LEFT JOIN", table: Expr(table), on: on})
	return b
}

// LeftJoinLateral joins a subquery that may reference earlier FROM items.
// Rows without a match keep NULLs in the subquery's columns.
func (b *SelectBuilder) LeftJoinLateral(sub *SelectBuilder, alias string) *SelectBuilder {
	b.joins = append(b.joins, join{kind: "LEFT JOIN LATERAL", table: Sub(sub, alias), on: "true"})
	return b
}

// Where adds predicates; all predicates across calls are AND-ed.
func (b *SelectBuilder) Where(conds ...Sqlizer) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, columns...)
	return b
}

// Having adds aggregate predicates; all predicates across calls are AND-ed.
func (b *SelectBuilder) Having(conds ...Sqlizer) *SelectBuilder {
	b.having = append(b.having, conds...)
	return b
}

// OrderBy appends plain ordering terms such as "books.title ASC".
func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	for _, t := range terms {
		b.orderBy = append(b.orderBy, Expr(t))
	}
	return b
}

// OrderByExpr appends an ordering term that binds arguments.
func (b *SelectBuilder) OrderByExpr(term Sqlizer) *SelectBuilder {
	b.orderBy = append(b.orderBy, term)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = &n
	return b
}

// ToSQL renders the statement with ? placeholders so it can be nested.
func (b *SelectBuilder) ToSQL() (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	write := func(parts []Sqlizer, sep string) {
		first := true
		for _, p := range parts {
			sql, a := p.ToSQL()
			if sql == "" {
				continue
			}
			if !first {
				sb.WriteString(sep)
			}
			first = false
			sb.WriteString(sql)
			args = append(args, a...)
		}
	}

	sb.WriteString("SELECT ")
	write(b.columns, ", ")
	if b.from != nil {
		from, a := b.from.ToSQL()
		sb.WriteString(" FROM " + from)
		args = append(args, a...)
	}
	for _, j := range b.joins {
		table, a := j.table.ToSQL()
		sb.WriteString(" " + j.kind + " " + table + " ON " + j.on)
		args = append(args, a...)
	}
	if where, a := And(b.where...).ToSQL(); where != "" {
		sb.WriteString(" WHERE " + where)
		args = append(args, a...)
	}
	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY " + strings.Join(b.groupBy, ", "))
	}
	if having, a := And(b.having...).ToSQL(); having != "" {
		sb.WriteString(" HAVING " + having)
		args = append(args, a...)
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		write(b.orderBy, ", ")
	}
	if b.limit != nil {
		sb.WriteString(" LIMIT ?")
		args = append(args, *b.limit)
	}
	if b.offset != nil {
		sb.WriteString(" OFFSET ?")
		args = append(args, *b.offset)
	}
	return sb.String(), args
}

// Build renders the statement with Postgres $n placeholders.
func (b *SelectBuilder) Build() (string, []any) {
	sql, args := b.ToSQL()
	return Rebind(sql), args
}

// Rebind replaces each ? placeholder with $1, $2, ... in order.
func Rebind(sql string) string {
	var (
		sb strings.Builder
		n  int
	)
	sb.Grow(len(sql) + 8)
	for _, r := range sql {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
