// Package query provides in-memory search and sort helpers for collections
// fetched from the backend.
package query

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SortField names a field and direction for ordering results.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated sort expression.
// A "-" prefix marks a field as descending: "-date,statut".
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	var fields []SortField
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, ok := strings.CutPrefix(part, "-"); ok {
			if name != "" {
				fields = append(fields, SortField{Field: name, Descending: true})
			}
			continue
		}
		fields = append(fields, SortField{Field: part})
	}
	return fields
}

// Fold lowercases s and strips combining marks so "Créé" matches "cree".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// MatchAny reports whether search occurs in any of fields, ignoring case and accents.
// A nil or blank search matches everything.
func MatchAny(search *string, fields ...string) bool {
	if search == nil {
		return true
	}
	needle := Fold(strings.TrimSpace(*search))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), needle) {
			return true
		}
	}
	return false
}

// Comparators maps sortable field names to comparison functions.
type Comparators[T any] map[string]func(a, b T) int

// Sort orders items in place by the given fields. Unknown fields are ignored;
// when no known field remains, defaultField is used.
func Sort[T any](items []T, fields []SortField, cmps Comparators[T], defaultField SortField) {
	var active []SortField
	for _, f := range fields {
		if _, ok := cmps[f.Field]; ok {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		if _, ok := cmps[defaultField.Field]; !ok {
			return
		}
		active = []SortField{defaultField}
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, f := range active {
			c := cmps[f.Field](a, b)
			if f.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

// Compare is a convenience wrapper over cmp.Compare for building Comparators.
func Compare[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
