package registry

import "strings"

// AllValue is the filter sentinel meaning "no constraint".
const AllValue = "all"

// IsUnset reports whether a filter value puts no constraint: empty or AllValue (any case).
func IsUnset(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, AllValue)
}

// Field extracts a string field from a record.
type Field[T any] func(rec T) string

// Filter is an exact-match constraint on one field.
type Filter[T any] struct {
	Name  string
	Value string
	Field Field[T]
}

// Projection is a filtered, non-mutating view of records for display.
// A record is kept when the search matches any of SearchFields and every set filter matches.
type Projection[T any] struct {
	Search       string
	SearchFields []Field[T]
	Filters      []Filter[T]
}

// Apply returns the matching records in their original order, in a new slice.
func (p Projection[T]) Apply(recs []T) []T {
	query := strings.ToLower(strings.TrimSpace(p.Search))

	var filters []Filter[T]
	for _, f := range p.Filters {
		if !IsUnset(f.Value) {
			filters = append(filters, f)
		}
	}

	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		if p.matchesSearch(rec, query) && matchesFilters(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

// WithFilter returns a copy of p with the named filter set to value.
func (p Projection[T]) WithFilter(name, value string) Projection[T] {
	filters := make([]Filter[T], len(p.Filters))
	copy(filters, p.Filters)
	for i := range filters {
		if filters[i].Name == name {
			filters[i].Value = value
		}
	}
	p.Filters = filters
	return p
}

func (p Projection[T]) matchesSearch(rec T, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range p.SearchFields {
		if strings.Contains(strings.ToLower(field(rec)), query) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](rec T, filters []Filter[T]) bool {
	for _, f := range filters {
		if f.Field(rec) != strings.TrimSpace(f.Value) {
			return false
		}
	}
	return true
}
