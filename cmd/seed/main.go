// Command seed fills the catalog with generated authors, categories, books and ratings.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/repository/postgres"
	"github.com/lib/pq"
)

type options struct {
	authors    int
	categories int
	books      int
	ratings    int
	raters     int
	batch      int
	seed       int64
	truncate   bool
}

type seeder struct {
	tx     *sql.Tx
	gen    *generator
	opts   options
	logger *jsonlog.Logger
}

func main() {
	var opts options
	configPath := flag.String("config", "config.yml", "Path to the YAML configuration file")
	flag.IntVar(&opts.authors, "authors", 1000, "Number of authors")
	flag.IntVar(&opts.categories, "categories", 3000, "Number of categories")
	flag.IntVar(&opts.books, "books", 100000, "Number of books")
	flag.IntVar(&opts.ratings, "ratings", 500000, "Number of ratings")
	flag.IntVar(&opts.raters, "raters", 20000, "Number of distinct raters")
	flag.IntVar(&opts.batch, "batch", 10000, "Rows per COPY batch")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	flag.BoolVar(&opts.truncate, "truncate", false, "Empty the catalog tables first")
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)
	if opts.seed == 0 {
		opts.seed = time.Now().UnixNano()
	}

	cfg, err := config.Decode(*configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	defer db.Close()
	if _, err := postgres.Migrate(db); err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}

	logger.PrintInfo("seeding catalog", map[string]string{
		"seed":    strconv.FormatInt(opts.seed, 10),
		"books":   strconv.Itoa(opts.books),
		"ratings": strconv.Itoa(opts.ratings),
	})
	start := time.Now()
	if err := run(context.Background(), db, opts, logger); err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	logger.PrintInfo("seeding completed", map[string]string{
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	})
}

// run loads everything in one transaction so a failed run leaves no partial catalog.
func run(ctx context.Context, db *sql.DB, opts options, logger *jsonlog.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	s := &seeder{tx: tx, gen: newGenerator(opts.seed, time.Now()), opts: opts, logger: logger}
	if opts.truncate {
		_, err := tx.ExecContext(ctx, `TRUNCATE ratings, book_category, books, categories, authors RESTART IDENTITY`)
		if err != nil {
			return err
		}
	}
	steps := []func(context.Context) error{s.authors, s.categories, s.books, s.bookCategories, s.ratings}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// copyRows streams n generated rows into table through COPY, one statement per batch.
func (s *seeder) copyRows(ctx context.Context, table string, columns []string, n int, row func(i int) []interface{}) error {
	for done := 0; done < n; {
		size := min(s.opts.batch, n-done)
		stmt, err := s.tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
		if err != nil {
			return fmt.Errorf("prepare copy into %s: %w", table, err)
		}
		for i := done; i < done+size; i++ {
			if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
				stmt.Close()
				return fmt.Errorf("copy into %s: %w", table, err)
			}
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			stmt.Close()
			return fmt.Errorf("flush copy into %s: %w", table, err)
		}
		if err := stmt.Close(); err != nil {
			return err
		}
		done += size
		s.logger.PrintInfo("rows inserted", map[string]string{
			"table":    table,
			"progress": fmt.Sprintf("%d/%d", done, n),
		})
	}
	return nil
}

func (s *seeder) ids(ctx context.Context, table string) ([]int64, error) {
	rows, err := s.tx.QueryContext(ctx, "SELECT id FROM "+pq.QuoteIdentifier(table)+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *seeder) authors(ctx context.Context) error {
	return s.copyRows(ctx, "authors", []string{"name"}, s.opts.authors, func(int) []interface{} {
		return []interface{}{s.gen.authorName()}
	})
}

func (s *seeder) categories(ctx context.Context) error {
	return s.copyRows(ctx, "categories", []string{"name"}, s.opts.categories, func(i int) []interface{} {
		return []interface{}{s.gen.categoryName(i + 1)}
	})
}

func (s *seeder) books(ctx context.Context) error {
	authorIDs, err := s.ids(ctx, "authors")
	if err != nil {
		return err
	}
	if len(authorIDs) == 0 {
		return fmt.Errorf("no authors to attach books to")
	}
	columns := []string{"title", "isbn", "author_id", "publisher", "publication_year", "availability_status", "store_location", "description", "price"}
	return s.copyRows(ctx, "books", columns, s.opts.books, func(int) []interface{} {
		return []interface{}{
			s.gen.title(),
			s.gen.isbn13(),
			authorIDs[s.gen.rng.Intn(len(authorIDs))],
			s.gen.publisher(),
			s.gen.year(),
			s.gen.availability(),
			s.gen.location(),
			s.gen.sentence(12, 30),
			s.gen.price(),
		}
	})
}

// bookCategories gives every book between one and five distinct categories.
func (s *seeder) bookCategories(ctx context.Context) error {
	bookIDs, err := s.ids(ctx, "books")
	if err != nil {
		return err
	}
	categoryIDs, err := s.ids(ctx, "categories")
	if err != nil || len(categoryIDs) == 0 {
		return err
	}
	type link struct{ book, category int64 }
	var links []link
	for _, book := range bookIDs {
		for _, category := range s.gen.distinct(categoryIDs, 1+s.gen.rng.Intn(5)) {
			links = append(links, link{book, category})
		}
	}
	return s.copyRows(ctx, "book_category", []string{"book_id", "category_id"}, len(links), func(i int) []interface{} {
		return []interface{}{links[i].book, links[i].category}
	})
}

// ratings skips any (book, rater) pair already drawn, so fewer rows than
// requested are written when the pool of pairs is small.
func (s *seeder) ratings(ctx context.Context) error {
	bookIDs, err := s.ids(ctx, "books")
	if err != nil || len(bookIDs) == 0 {
		return err
	}
	raters := s.gen.raters(s.opts.raters)
	if len(raters) == 0 {
		return nil
	}
	type pair struct {
		book  int64
		rater int
	}
	capacity := len(bookIDs) * len(raters)
	target := min(s.opts.ratings, capacity)
	seen := make(map[pair]struct{}, target)
	pairs := make([]pair, 0, target)
	for attempts := 0; len(pairs) < target && attempts < 4*target; attempts++ {
		p := pair{bookIDs[s.gen.rng.Intn(len(bookIDs))], s.gen.rng.Intn(len(raters))}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}
	columns := []string{"book_id", "user_identifier", "rating", "review", "created_at", "updated_at"}
	return s.copyRows(ctx, "ratings", columns, len(pairs), func(i int) []interface{} {
		ratedAt := s.gen.ratedAt()
		return []interface{}{pairs[i].book, raters[pairs[i].rater], s.gen.rating(), s.gen.review(), ratedAt, ratedAt}
	})
}
