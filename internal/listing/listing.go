// Package listing holds the in-memory search and filter shared by every manager list.
package listing

import "strings"

// All is the filter value that disables an equality filter.
const All = "all"

// IsAll reports whether v disables a filter ("", "all", any case).
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// MatchesTerm is a case-insensitive substring match of term against any field.
// An empty term matches everything.
func MatchesTerm(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Search keeps the items whose fields match term, preserving order.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	if strings.TrimSpace(term) == "" {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if MatchesTerm(term, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}

// Where keeps the items whose key equals want (case-insensitive), preserving order.
// IsAll(want) returns the input unchanged.
func Where[T any](items []T, want string, key func(T) string) []T {
	if IsAll(want) {
		return append([]T(nil), items...)
	}
	want = strings.TrimSpace(want)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(key(it), want) {
			out = append(out, it)
		}
	}
	return out
}

// Filter applies Where then Search.
func Filter[T any](items []T, term, want string, fields func(T) []string, key func(T) string) []T {
	return Search(Where(items, want, key), term, fields)
}
