package domain

// RawOffer is the source-of-truth representation of one scholarship
// listing, exactly as it appears in the data source. Prices are numeric
// (BRL units) and kind/level carry the raw category codes.
type RawOffer struct {
	CourseName   string  `json:"courseName"`
	Rating       float64 `json:"rating"`
	FullPrice    float64 `json:"fullPrice"`
	OfferedPrice float64 `json:"offeredPrice"`
	Kind         string  `json:"kind"`  // "Presencial" / "presencial" / "EaD" / "ead"
	Level        string  `json:"level"` // "bacharelado" / "tecnologo" / "licenciatura"
	IESLogo      string  `json:"iesLogo"`
	IESName      string  `json:"iesName"`
}

// ProcessedOffer is the display representation: prices are localized
// currency strings, kind/level are human-readable labels, and the
// discount is precomputed. Built per request, never stored.
type ProcessedOffer struct {
	CourseName         string  `json:"courseName"`
	Rating             float64 `json:"rating"`
	FullPrice          string  `json:"fullPrice"`
	OfferedPrice       string  `json:"offeredPrice"`
	DiscountPercentage string  `json:"discountPercentage"`
	Kind               string  `json:"kind"`
	Level              string  `json:"level"`
	IESLogo            string  `json:"iesLogo"`
	IESName            string  `json:"iesName"`
}

// Sort keys accepted by QueryFilters.SortBy.
const (
	SortByCourseName   = "courseName"
	SortByOfferedPrice = "offeredPrice"
	SortByRating       = "rating"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Defaults applied when pagination parameters are absent.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// QueryFilters is the validated query specification handed to the
// engine. A nil/empty field means "no constraint". MinPrice/MaxPrice are
// pointers so an explicit bound of zero stays distinguishable from
// "not given".
type QueryFilters struct {
	Level     []string
	Kind      []string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
	Fields    []string
}

// Pagination metadata returned alongside every page.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// OfferPayload is one entry of a result page: the full ProcessedOffer
// field set, or the projected subset when the request named fields.
type OfferPayload map[string]any

// QueryResult is one page of offers plus pagination metadata. It is the
// response body of GET /api/offers.
type QueryResult struct {
	Data       []OfferPayload `json:"data"`
	Pagination Pagination     `json:"pagination"`
}
