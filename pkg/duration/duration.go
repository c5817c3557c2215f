// Package duration converts recipe time strings into whole minutes.
//
// Two formats are understood: the ISO-8601-like values found in schema.org
// metadata ("PT20M", "P0DT1H30M") and the free text shown on recipe pages
// ("1 hr 20 min"). Every function here is total: unreadable input yields 0.
package duration

import "strings"

// Parse picks the parser based on the shape of s. Values starting with "P"
// followed by a digit or "T" are treated as ISO durations, anything else as
// free text.
func Parse(s string) int {
	s = strings.TrimSpace(s)
	if isISO(s) {
		return ParseISO(s)
	}
	return ParseFreeText(s)
}

func isISO(s string) bool {
	if len(s) < 2 || s[0] != 'P' {
		return false
	}
	c := s[1]
	return c == 'T' || (c >= '0' && c <= '9')
}

// ParseISO reads "PT<m>M" or "P...T<h>H<m>M" and returns hours*60 + minutes.
// The trailing character is assumed to be the minute designator.
func ParseISO(s string) int {
	if s == "" {
		return 0
	}
	start := strings.Index(s, "T") + 1
	end := len(s) - 1

	if !strings.Contains(s, "H") {
		return leadingInt(substring(s, start, end))
	}

	h := strings.Index(s, "H")
	hours := leadingInt(substring(s, start, h))
	minutes := leadingInt(substring(s, h+1, end))
	return hours*60 + minutes
}

// ParseFreeText reads strings such as "1 hr 20 min", "45 mins" or "2 hrs".
// Units are required: "20" alone returns 0.
func ParseFreeText(s string) int {
	if s == "" {
		return 0
	}
	hourIdx := strings.Index(s, "hr")
	minIdx := strings.Index(s, "min")

	hours, minutes := 0, 0
	if hourIdx > -1 {
		hours = digitsInt(s[:hourIdx])
	}
	if minIdx > -1 {
		from := max(hourIdx, 0)
		minutes = digitsInt(substring(s, from, minIdx))
	}
	return hours*60 + minutes
}

// substring returns s[a:b] with both bounds clamped and swapped when reversed.
func substring(s string, a, b int) string {
	a = min(max(a, 0), len(s))
	b = min(max(b, 0), len(s))
	if a > b {
		a, b = b, a
	}
	return s[a:b]
}

// leadingInt parses the digits at the start of s, after optional spaces.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t")
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// digitsInt drops every non-digit and parses what is left.
func digitsInt(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}
