package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderings(t *testing.T) {
	tests := []struct {
		raw  string
		want []Ordering
	}{
		{raw: "", want: nil},
		{raw: " , -", want: nil},
		{raw: "name", want: []Ordering{{Field: "name", Ascending: true}}},
		{raw: "-price, name", want: []Ordering{{Field: "price"}, {Field: "name", Ascending: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrderings(tt.raw))
		})
	}
}

func TestSortBy(t *testing.T) {
	type item struct {
		name  string
		price int
	}
	fields := map[string]Comparator[item]{
		"name":  func(a, b item) int { return CompareStrings(a.name, b.name) },
		"price": func(a, b item) int { return CompareInts(a.price, b.price) },
	}
	names := func(items []item) []string {
		var res []string
		for _, it := range items {
			res = append(res, it.name)
		}
		return res
	}

	tests := []struct {
		name     string
		ordering string
		want     []string
	}{
		{name: "none keeps order", ordering: "", want: []string{"b", "A", "c", "d"}},
		{name: "unknown field keeps order", ordering: "lol", want: []string{"b", "A", "c", "d"}},
		{name: "name case insensitive", ordering: "name", want: []string{"A", "b", "c", "d"}},
		{name: "price desc then name", ordering: "-price,name", want: []string{"c", "d", "A", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []item{{"b", 10}, {"A", 10}, {"c", 30}, {"d", 30}}
			SortBy(items, ParseOrderings(tt.ordering), fields)
			assert.Equal(t, tt.want, names(items))
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "x", FirstNonEmpty("", "  ", "x", "y"))
	assert.Equal(t, "", FirstNonEmpty(" "))
	assert.Equal(t, "all", CleanString(" ALL ", true))
}
