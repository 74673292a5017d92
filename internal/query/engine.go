// Package query implements the offer query pipeline: filter, sort,
// paginate, format, project, strictly in that order. Formatting runs
// after pagination so its cost is paid only for the returned page.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"offers-api/internal/domain"
	"offers-api/internal/mappings"
)

// Run executes a query specification against the raw collection and
// returns one page of display-ready offers plus pagination metadata.
// A nil collection is the degenerate empty case, never an error.
func Run(rawOffers []domain.RawOffer, filters domain.QueryFilters) domain.QueryResult {
	page := filters.Page
	if page <= 0 {
		page = domain.DefaultPage
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}

	filtered := applyFilters(rawOffers, filters)
	sorted := applySorting(filtered, filters)

	totalItems := len(sorted)
	totalPages := (totalItems + limit - 1) / limit

	window := paginate(sorted, page, limit)

	data := make([]domain.OfferPayload, 0, len(window))
	for _, offer := range window {
		data = append(data, project(Process(offer), filters.Fields))
	}

	return domain.QueryResult{
		Data: data,
		Pagination: domain.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   totalItems,
			ItemsPerPage: limit,
		},
	}
}

// applyFilters keeps a record iff every present predicate holds. An
// absent filter field constrains nothing.
func applyFilters(offers []domain.RawOffer, f domain.QueryFilters) []domain.RawOffer {
	var out []domain.RawOffer
	search := strings.ToLower(f.Search)

	for _, offer := range offers {
		if len(f.Level) > 0 && !contains(f.Level, offer.Level) {
			continue
		}
		if len(f.Kind) > 0 && !contains(f.Kind, offer.Kind) {
			continue
		}
		if f.MinPrice != nil && offer.OfferedPrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && offer.OfferedPrice > *f.MaxPrice {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(offer.CourseName), search) {
			continue
		}
		out = append(out, offer)
	}
	return out
}

// applySorting stable-sorts by the requested key. Course names compare
// with pt-BR collation, the numeric keys numerically. Without a sortBy
// the filtered (source) order is preserved.
func applySorting(offers []domain.RawOffer, f domain.QueryFilters) []domain.RawOffer {
	if f.SortBy == "" {
		return offers
	}

	direction := 1
	if f.SortOrder == domain.SortDesc {
		direction = -1
	}

	sorted := make([]domain.RawOffer, len(offers))
	copy(sorted, offers)

	var less func(a, b domain.RawOffer) bool
	switch f.SortBy {
	case domain.SortByCourseName:
		cl := collate.New(language.BrazilianPortuguese)
		less = func(a, b domain.RawOffer) bool {
			return cl.CompareString(a.CourseName, b.CourseName)*direction < 0
		}
	case domain.SortByOfferedPrice:
		less = func(a, b domain.RawOffer) bool {
			return compareFloat(a.OfferedPrice, b.OfferedPrice)*direction < 0
		}
	case domain.SortByRating:
		less = func(a, b domain.RawOffer) bool {
			return compareFloat(a.Rating, b.Rating)*direction < 0
		}
	default:
		return offers
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// paginate slices the window [(page-1)*limit, page*limit). Out-of-range
// pages yield an empty slice, not an error.
func paginate(offers []domain.RawOffer, page, limit int) []domain.RawOffer {
	start := (page - 1) * limit
	if start >= len(offers) {
		return nil
	}
	end := min(start+limit, len(offers))
	return offers[start:end]
}

// Process converts a raw offer into its display form. Unknown category
// codes keep the raw code so the display is never silently blank.
func Process(raw domain.RawOffer) domain.ProcessedOffer {
	kind, ok := mappings.KindLabel(raw.Kind)
	if !ok {
		kind = raw.Kind
	}
	level, ok := mappings.LevelLabel(raw.Level)
	if !ok {
		level = raw.Level
	}

	return domain.ProcessedOffer{
		CourseName:         raw.CourseName,
		Rating:             raw.Rating,
		FullPrice:          mappings.FormatCurrency(raw.FullPrice),
		OfferedPrice:       mappings.FormatCurrency(raw.OfferedPrice),
		DiscountPercentage: mappings.DiscountPercentage(raw.FullPrice, raw.OfferedPrice),
		Kind:               kind,
		Level:              level,
		IESLogo:            raw.IESLogo,
		IESName:            raw.IESName,
	}
}

// project reduces an offer to the requested fields. Unknown field names
// are silently omitted; an empty list keeps the full record.
func project(offer domain.ProcessedOffer, fields []string) domain.OfferPayload {
	full := domain.OfferPayload{
		"courseName":         offer.CourseName,
		"rating":             offer.Rating,
		"fullPrice":          offer.FullPrice,
		"offeredPrice":       offer.OfferedPrice,
		"discountPercentage": offer.DiscountPercentage,
		"kind":               offer.Kind,
		"level":              offer.Level,
		"iesLogo":            offer.IESLogo,
		"iesName":            offer.IESName,
	}
	if len(fields) == 0 {
		return full
	}

	selected := domain.OfferPayload{}
	for _, field := range fields {
		if v, ok := full[field]; ok {
			selected[field] = v
		}
	}
	return selected
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
