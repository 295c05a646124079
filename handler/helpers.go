package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/validator"
)

type envelope map[string]interface{}

// readString returns a string value from the query string, or the provided
// default value if no matching key could be found.
func (h *Handler) readString(qs url.Values, key string, defaultValue string) string {
	s := strings.TrimSpace(qs.Get(key))
	if s == "" {
		return defaultValue
	}
	return s
}

// readInt reads a string value from the query string and converts it to an
// integer before returning. If no matching key could be found it returns the
// provided default value. If the value couldn't be converted to an integer,
// then the error is recorded in the provided Validator instance.
func (h *Handler) readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := strings.TrimSpace(qs.Get(key))
	if s == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

func (h *Handler) readInt64(qs url.Values, key string, defaultValue int64, v *validator.Validator) int64 {
	s := strings.TrimSpace(qs.Get(key))
	if s == "" {
		return defaultValue
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

// readFloat returns nil when the key is absent so callers can tell "not given" from zero.
func (h *Handler) readFloat(qs url.Values, key string, v *validator.Validator) *float64 {
	s := strings.TrimSpace(qs.Get(key))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v.AddError(key, "must be a number")
		return nil
	}
	return &f
}

// readIDList collects ids given either as repeated keys (?categories=1&categories=2),
// with the bracket suffix some form libraries add, or as one comma-separated value.
func (h *Handler) readIDList(qs url.Values, key string, v *validator.Validator) []int64 {
	var ids []int64
	values := append(append([]string{}, qs[key]...), qs[key+"[]"]...)
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				v.AddError(key, "must contain integer ids")
				return nil
			}
			ids = append(ids, id)
		}
	}
	v.Check(validator.Unique(ids), key, "must not contain duplicate ids")
	return ids
}

// pageLinks builds first/prev/next/last URLs for a listing, keeping every
// other query parameter of the current request.
func pageLinks(u *url.URL, metadata data.Metadata) map[string]string {
	links := map[string]string{}
	if metadata.TotalRecords == 0 {
		return links
	}
	link := func(page int) string {
		qs := u.Query()
		qs.Set("page", strconv.Itoa(page))
		return u.Path + "?" + qs.Encode()
	}
	links["first"] = link(metadata.FirstPage)
	links["last"] = link(metadata.LastPage)
	if metadata.CurrentPage > metadata.FirstPage {
		links["prev"] = link(metadata.CurrentPage - 1)
	}
	if metadata.CurrentPage < metadata.LastPage {
		links["next"] = link(metadata.CurrentPage + 1)
	}
	return links
}

// encodeJSON serializes data to JSON and writes the appropriate HTTP status code and headers if necessary.
func (h *Handler) encodeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')
	for k, v := range headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// fieldTypeError reports a JSON value whose type does not fit the named field.
type fieldTypeError struct {
	field   string
	message string
}

func (e *fieldTypeError) Error() string {
	return fmt.Sprintf("body contains incorrect JSON type for field %q", e.field)
}

func typeMessage(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.String:
		return "must be a string"
	default:
		return "has an invalid type"
	}
}

// decodeJSON decodes a single JSON value from the request body into dst and
// turns decoder errors into messages fit for the client.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return &fieldTypeError{field: unmarshalTypeError.Field, message: typeMessage(unmarshalTypeError.Type)}
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}
