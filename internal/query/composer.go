package query

import (
	"fmt"
	"time"

	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
)

// Predicate reports whether a record satisfies every active constraint.
type Predicate[T any] func(T) bool

// MatchAll is the predicate of a criteria set with no active constraints.
func MatchAll[T any]() Predicate[T] {
	return func(T) bool { return true }
}

type clause[T any] struct {
	name  string
	match func(T) bool
}

// Composer collects active constraints together with the record accessors they
// read and ANDs them into a Predicate. Absent constraints are skipped when they
// are added, so the built predicate only evaluates what the caller asked for.
type Composer[T any] struct {
	clauses []clause[T]
	missing []string
}

// NewComposer returns an empty composer.
func NewComposer[T any]() *Composer[T] {
	return &Composer[T]{}
}

// Text adds a substring constraint matched against any of fields.
func (c *Composer[T]) Text(name string, t Text, fields ...func(T) string) *Composer[T] {
	if !t.Active() {
		return c
	}
	if len(fields) == 0 {
		c.missing = append(c.missing, name)
		return c
	}
	for _, f := range fields {
		if f == nil {
			c.missing = append(c.missing, name)
			return c
		}
	}
	c.add(name, func(r T) bool {
		values := make([]string, len(fields))
		for i, f := range fields {
			values[i] = f(r)
		}
		return t.Matches(values...)
	})
	return c
}

// Enum adds an exact-match constraint.
func (c *Composer[T]) Enum(name string, e Enum, field func(T) string) *Composer[T] {
	if !e.Active() {
		return c
	}
	if field == nil {
		c.missing = append(c.missing, name)
		return c
	}
	if e.Unknown() {
		log.Debug("[query] %s=%q is not a known value (%s)", name, e.Value(), EnumUnknownMatchesNothing)
	}
	c.add(name, func(r T) bool { return e.Matches(field(r)) })
	return c
}

// Range adds a numeric range constraint.
func (c *Composer[T]) Range(name string, rg Range, field func(T) float64) *Composer[T] {
	if !rg.Active() {
		return c
	}
	if field == nil {
		c.missing = append(c.missing, name)
		return c
	}
	c.add(name, func(r T) bool { return rg.Contains(field(r)) })
	return c
}

// Magnitude adds a range constraint over a unit-suffixed string field.
func (c *Composer[T]) Magnitude(name string, rg Range, field func(T) string) *Composer[T] {
	if !rg.Active() {
		return c
	}
	if field == nil {
		c.missing = append(c.missing, name)
		return c
	}
	c.add(name, func(r T) bool { return rg.ContainsMagnitude(field(r)) })
	return c
}

// Instant adds a range constraint over a timestamp field. A zero time never
// matches.
func (c *Composer[T]) Instant(name string, rg TimeRange, field func(T) time.Time) *Composer[T] {
	if !rg.Active() {
		return c
	}
	if field == nil {
		c.missing = append(c.missing, name)
		return c
	}
	c.add(name, func(r T) bool {
		ts := field(r)
		if ts.IsZero() {
			return false
		}
		return rg.Contains(ts)
	})
	return c
}

func (c *Composer[T]) add(name string, match func(T) bool) {
	c.clauses = append(c.clauses, clause[T]{name: name, match: match})
}

// Len returns the number of active constraints.
func (c *Composer[T]) Len() int { return len(c.clauses) }

// Build returns the conjunction of the collected constraints. It fails with
// ErrMissingField when an active constraint was added without a field accessor.
func (c *Composer[T]) Build() (Predicate[T], error) {
	if len(c.missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingField, c.missing)
	}
	if len(c.clauses) == 0 {
		return MatchAll[T](), nil
	}
	clauses := make([]clause[T], len(c.clauses))
	copy(clauses, c.clauses)
	return func(r T) bool {
		for _, cl := range clauses {
			if !cl.match(r) {
				return false
			}
		}
		return true
	}, nil
}
