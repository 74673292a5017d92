package store

import "errors"

// Load failures each wrap one of these sentinels so callers can tell
// the cases apart with errors.Is while the surfaced message keeps the
// original cause.
var (
	ErrEmptyDataSource       = errors.New("data source is empty")
	ErrMalformedDataSource   = errors.New("data source is not valid JSON")
	ErrUnsupportedDataShape  = errors.New("unsupported data shape")
	ErrEmptyOfferSet         = errors.New("offers array is empty")
	ErrMissingRequiredFields = errors.New("offer is missing required fields")
)
