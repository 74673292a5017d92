package server

import (
	"net/url"
	"strconv"
	"strings"

	"offers-api/internal/domain"
)

var validSortBy = map[string]bool{
	domain.SortByCourseName:   true,
	domain.SortByOfferedPrice: true,
	domain.SortByRating:       true,
}

var validSortOrder = map[string]bool{
	domain.SortAsc:  true,
	domain.SortDesc: true,
}

// ParseQuery turns loosely-typed query parameters into a validated
// filter specification. It is deliberately tolerant: numbers that do
// not parse are treated as absent, out-of-enum sort values are
// discarded, and page/limit fall back to their defaults. The engine
// never sees untyped values.
func ParseQuery(values url.Values) domain.QueryFilters {
	filters := domain.QueryFilters{
		Level:    parseList(values, "level"),
		Kind:     parseList(values, "kind"),
		MinPrice: parseFloat(values.Get("minPrice")),
		MaxPrice: parseFloat(values.Get("maxPrice")),
		Search:   values.Get("search"),
		Page:     parsePositiveInt(values.Get("page"), domain.DefaultPage),
		Limit:    parsePositiveInt(values.Get("limit"), domain.DefaultLimit),
		Fields:   parseList(values, "fields"),
	}

	if sortBy := values.Get("sortBy"); validSortBy[sortBy] {
		filters.SortBy = sortBy
		filters.SortOrder = domain.SortAsc
		if order := values.Get("sortOrder"); validSortOrder[order] {
			filters.SortOrder = order
		}
	}

	return filters
}

// parseList normalizes the accepted array encodings (repeated
// parameter, comma-separated value, single scalar) into an ordered
// slice. Absent parameters yield nil.
func parseList(values url.Values, key string) []string {
	raw := values[key]
	switch {
	case len(raw) == 0:
		return nil
	case len(raw) > 1:
		return raw
	case strings.Contains(raw[0], ","):
		return strings.Split(raw[0], ",")
	case raw[0] == "":
		return nil
	default:
		return []string{raw[0]}
	}
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
