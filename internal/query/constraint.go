// Package query implements the catalog's faceted filter, sort and limit engine.
//
// Constraints are plain values with an explicit absent state. Callers build them
// through the New*/Parse* constructors, which fold every "no constraint" spelling
// (missing parameter, blank string, sentinel) into that state once, at the
// boundary. The Composer turns the active constraints into a single predicate and
// the Engine runs filter, stable sort and truncate over a borrowed slice.
package query

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
)

// Policy names how a constructor treats a caller value it cannot use.
type Policy int

const (
	// EnumUnknownMatchesNothing: an exact-match value outside the field's
	// enumeration stays active and excludes every record (fail-closed).
	EnumUnknownMatchesNothing Policy = iota + 1

	// BoundMalformedIgnored: a range bound that does not parse as a number is
	// dropped and behaves as if the caller never sent it (fail-open).
	BoundMalformedIgnored
)

// String returns the policy name used in logs.
func (p Policy) String() string {
	switch p {
	case EnumUnknownMatchesNothing:
		return "enum-unknown-matches-nothing"
	case BoundMalformedIgnored:
		return "bound-malformed-ignored"
	default:
		return "unknown-policy"
	}
}

// Sentinels are exact-match values meaning "do not filter on this field".
var Sentinels = []string{"Tümü", "all"}

// IsSentinel reports whether raw is one of the Sentinels, ignoring case and
// surrounding space.
func IsSentinel(raw string) bool {
	v := Fold(strings.TrimSpace(raw))
	for _, s := range Sentinels {
		if v == Fold(s) {
			return true
		}
	}
	return false
}

// Text is a case-insensitive substring constraint.
type Text struct {
	term   string
	active bool
}

// NewText normalizes a search term. Blank input yields an absent constraint.
func NewText(raw string) Text {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Text{}
	}
	return Text{term: Fold(trimmed), active: true}
}

// Active reports whether the constraint filters anything.
func (t Text) Active() bool { return t.active }

// Term returns the folded search term.
func (t Text) Term() string { return t.term }

// Matches reports whether any of values contains the term after folding.
// An absent constraint matches everything.
func (t Text) Matches(values ...string) bool {
	if !t.active {
		return true
	}
	for _, v := range values {
		if strings.Contains(Fold(v), t.term) {
			return true
		}
	}
	return false
}

type enumState uint8

const (
	enumAbsent enumState = iota
	enumKnown
	enumUnknown
)

// Enum is an exact-match constraint over an enumerated field.
type Enum struct {
	value string
	state enumState
}

// NewEnum normalizes raw against the field's enumeration. Blank input and
// Sentinels yield an absent constraint. A value outside allowed is kept active
// under EnumUnknownMatchesNothing.
func NewEnum(raw string, allowed []string) Enum {
	v := strings.TrimSpace(raw)
	if v == "" || IsSentinel(v) {
		return Enum{}
	}
	for _, a := range allowed {
		if a == v {
			return Enum{value: v, state: enumKnown}
		}
	}
	return Enum{value: v, state: enumUnknown}
}

// Active reports whether the constraint filters anything.
func (e Enum) Active() bool { return e.state != enumAbsent }

// Unknown reports whether the value fell outside the enumeration.
func (e Enum) Unknown() bool { return e.state == enumUnknown }

// Value returns the requested value, or "" when absent.
func (e Enum) Value() string { return e.value }

// Matches compares v with the requested value.
func (e Enum) Matches(v string) bool {
	switch e.state {
	case enumAbsent:
		return true
	case enumUnknown:
		return false
	default:
		return v == e.value
	}
}

// Range is an inclusive numeric interval with independently optional bounds.
// Lower > upper is kept as given and matches nothing.
type Range struct {
	min *float64
	max *float64
}

// NewRange builds a range from already-validated bounds. NaN bounds are dropped.
func NewRange(min, max *float64) Range {
	return Range{min: usable(min), max: usable(max)}
}

// ParseRange builds a range from caller strings under BoundMalformedIgnored.
func ParseRange(minRaw, maxRaw string) Range {
	return Range{min: ParseBound(minRaw), max: ParseBound(maxRaw)}
}

// TimeRange is an inclusive interval of instants with independently optional
// bounds. Bounds compare as instants, so zones and sub-second precision are
// kept exactly.
type TimeRange struct {
	start *time.Time
	end   *time.Time
}

// NewTimeRange builds a time range. Nil bounds are absent.
func NewTimeRange(start, end *time.Time) TimeRange {
	var r TimeRange
	if start != nil {
		v := *start
		r.start = &v
	}
	if end != nil {
		v := *end
		r.end = &v
	}
	return r
}

// Active reports whether at least one bound is set.
func (r TimeRange) Active() bool { return r.start != nil || r.end != nil }

// Start returns the lower bound and whether it is set.
func (r TimeRange) Start() (time.Time, bool) {
	if r.start == nil {
		return time.Time{}, false
	}
	return *r.start, true
}

// End returns the upper bound and whether it is set.
func (r TimeRange) End() (time.Time, bool) {
	if r.end == nil {
		return time.Time{}, false
	}
	return *r.end, true
}

// Contains reports whether ts lies within the set bounds.
func (r TimeRange) Contains(ts time.Time) bool {
	if r.start != nil && ts.Before(*r.start) {
		return false
	}
	if r.end != nil && ts.After(*r.end) {
		return false
	}
	return true
}

// ParseBound parses one caller-supplied bound. Blank, malformed or NaN input
// returns nil (BoundMalformedIgnored).
func ParseBound(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		log.Debug("[query] bound %q dropped (%s)", s, BoundMalformedIgnored)
		return nil
	}
	return &v
}

func usable(b *float64) *float64 {
	if b == nil || math.IsNaN(*b) {
		return nil
	}
	v := *b
	return &v
}

// Active reports whether at least one bound is set.
func (r Range) Active() bool { return r.min != nil || r.max != nil }

// Min returns the lower bound and whether it is set.
func (r Range) Min() (float64, bool) {
	if r.min == nil {
		return 0, false
	}
	return *r.min, true
}

// Max returns the upper bound and whether it is set.
func (r Range) Max() (float64, bool) {
	if r.max == nil {
		return 0, false
	}
	return *r.max, true
}

// Contains reports whether v lies within the set bounds. NaN never satisfies an
// active range.
func (r Range) Contains(v float64) bool {
	if !r.Active() {
		return true
	}
	if math.IsNaN(v) {
		return false
	}
	if r.min != nil && v < *r.min {
		return false
	}
	if r.max != nil && v > *r.max {
		return false
	}
	return true
}

// ContainsMagnitude extracts the number embedded in raw and checks it against
// the range. A value without digits fails every active range.
func (r Range) ContainsMagnitude(raw string) bool {
	if !r.Active() {
		return true
	}
	v, ok := ExtractMagnitude(raw)
	if !ok {
		return false
	}
	return r.Contains(v)
}
