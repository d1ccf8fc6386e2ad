package query

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case. Blank input returns def.
func ParseDirection(raw string, def Direction) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def, nil
	case string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDirection, raw)
	}
}

// SortSpec names the field to sort by and the direction.
type SortSpec struct {
	Field     string
	Direction Direction
}

// Comparator orders two records by one field.
type Comparator[T any] func(a, b T) int

// ByFloat compares records by a numeric field.
func ByFloat[T any](field func(T) float64) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(field(a), field(b)) }
}

// ByTime compares records by instant, independent of location or display form.
func ByTime[T any](field func(T) time.Time) Comparator[T] {
	return func(a, b T) int { return field(a).Compare(field(b)) }
}

// Request is one pipeline invocation. Nil Where matches everything, nil Sort
// keeps filter order and nil Limit returns every match.
type Request[T any] struct {
	Where Predicate[T]
	Sort  *SortSpec
	Limit *int
}

// Engine runs filter, stable sort and truncate over a record slice. The set of
// sortable fields is fixed at construction.
type Engine[T any] struct {
	keys map[string]Comparator[T]
}

// NewEngine returns an engine sorting only by the given keys.
func NewEngine[T any](keys map[string]Comparator[T]) *Engine[T] {
	k := make(map[string]Comparator[T], len(keys))
	for name, c := range keys {
		k[name] = c
	}
	return &Engine[T]{keys: k}
}

// SortKeys returns the allowed sort field names in lexical order.
func (e *Engine[T]) SortKeys() []string {
	names := make([]string, 0, len(e.keys))
	for name := range e.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateSort checks spec against the allow-list. A nil spec is valid.
func (e *Engine[T]) ValidateSort(spec *SortSpec) error {
	if spec == nil {
		return nil
	}
	if _, ok := e.keys[spec.Field]; !ok {
		return fmt.Errorf("%w: %q (allowed: %s)", ErrUnsupportedSortField, spec.Field, strings.Join(e.SortKeys(), ", "))
	}
	switch spec.Direction {
	case Asc, Desc:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDirection, spec.Direction)
	}
}

// Run validates the request and returns a fresh slice of matching records.
// records is only read.
func (e *Engine[T]) Run(records []T, req Request[T]) ([]T, error) {
	if err := e.ValidateSort(req.Sort); err != nil {
		return nil, err
	}

	out := Filter(records, req.Where)
	if req.Sort != nil {
		sortInPlace(out, e.keys[req.Sort.Field], req.Sort.Direction)
	}
	return Truncate(out, req.Limit), nil
}

// Filter returns the records accepted by p in input order.
func Filter[T any](records []T, p Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if p == nil || p(r) {
			out = append(out, r)
		}
	}
	return out
}

// Sorted returns a stably sorted copy of records.
func Sorted[T any](records []T, c Comparator[T], dir Direction) []T {
	out := slices.Clone(records)
	if out == nil {
		out = []T{}
	}
	sortInPlace(out, c, dir)
	return out
}

func sortInPlace[T any](records []T, c Comparator[T], dir Direction) {
	if dir == Desc {
		slices.SortStableFunc(records, func(a, b T) int { return c(b, a) })
		return
	}
	slices.SortStableFunc(records, c)
}

// Truncate returns the first *limit records. Limit <= 0 yields an empty slice
// and a nil limit keeps every record. The result shares records' backing array.
func Truncate[T any](records []T, limit *int) []T {
	if limit == nil {
		return records
	}
	if *limit <= 0 {
		return []T{}
	}
	if *limit >= len(records) {
		return records
	}
	return records[:*limit:*limit]
}

// ParseLimit reads a limit parameter. Blank means no limit; anything that is
// not a base-10 integer is rejected. Zero and negative values are kept and
// produce an empty result.
func ParseLimit(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLimit, raw)
	}
	return &n, nil
}
