package query

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ExtractMagnitude pulls the number out of a unit-suffixed string such as
// "5.2g" or "18 ayar". Every character other than digits and '.' is dropped,
// then the longest leading decimal is parsed, so "1.5.0" reads as 1.5.
// ok is false when no digit is present.
func ExtractMagnitude(raw string) (value float64, ok bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()

	end, digits, dot := 0, 0, false
	for end < len(s) {
		if s[end] == '.' {
			if dot {
				break
			}
			dot = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Fold returns the caseless form of s used for substring matching. Input is
// NFC-normalized first so precomposed and combining Turkish letters compare equal.
// A Caser keeps state, so one is created per call.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
