// Package store loads the raw offer collection from a providers.Source,
// validates it, and memoizes it for the lifetime of the process (or
// until Reset). It replaces the usual lazily-populated global with an
// explicit object constructed once at startup and passed around.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"offers-api/internal/domain"
	"offers-api/internal/providers"
)

// requiredFields must be present on sampled records. iesLogo is allowed
// to be absent: it is cosmetic and some sources omit it.
var requiredFields = []string{
	"courseName", "rating", "fullPrice", "offeredPrice", "kind", "level", "iesName",
}

// sampleSize bounds the structural check; validating the whole set on
// every load would penalize large catalogs for no extra confidence.
const sampleSize = 3

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Store holds the memoized raw offer collection. The zero value is not
// usable; construct with New.
type Store struct {
	source providers.Source

	mu     sync.Mutex
	offers []domain.RawOffer // nil until the first successful load
}

func New(source providers.Source) *Store {
	return &Store{source: source}
}

// RawOffers returns the cached collection, loading it on first use.
// Concurrent first calls perform a single load and all observe the same
// result. A failed load is not cached: the next call tries again.
func (s *Store) RawOffers(ctx context.Context) ([]domain.RawOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offers != nil {
		return s.offers, nil
	}

	offers, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load offers from %s: %w", s.source.Name(), err)
	}

	s.offers = offers
	return s.offers, nil
}

// Reset clears the cached collection so the next RawOffers call loads
// from the source again.
func (s *Store) Reset() {
	s.mu.Lock()
	s.offers = nil
	s.mu.Unlock()
}

func (s *Store) load(ctx context.Context) ([]domain.RawOffer, error) {
	data, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDataSource
	}

	records, err := normalizeShape(data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyOfferSet
	}

	if err := validateSample(records); err != nil {
		return nil, err
	}

	offers := make([]domain.RawOffer, len(records))
	for i, rec := range records {
		if err := json.Unmarshal(rec, &offers[i]); err != nil {
			return nil, fmt.Errorf("%w: offer %d: %v", ErrMalformedDataSource, i+1, err)
		}
	}
	return offers, nil
}

// normalizeShape accepts either a bare array of offers or an object
// wrapping one under "offers", and rejects everything else.
func normalizeShape(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, parseError(err)
		}
		return records, nil
	case '{':
		var wrapper struct {
			Offers *[]json.RawMessage `json:"offers"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, parseError(err)
		}
		if wrapper.Offers == nil {
			return nil, fmt.Errorf(`%w: expected array or object with "offers" array`, ErrUnsupportedDataShape)
		}
		return *wrapper.Offers, nil
	default:
		// Valid JSON scalars (numbers, strings, booleans) land here.
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, parseError(err)
		}
		return nil, fmt.Errorf(`%w: expected array or object with "offers" array, got %T`, ErrUnsupportedDataShape, v)
	}
}

func parseError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Errorf("%w: JSON parsing error: %v", ErrMalformedDataSource, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Errorf(`%w: expected array or object with "offers" array`, ErrUnsupportedDataShape)
	}
	return fmt.Errorf("%w: %v", ErrMalformedDataSource, err)
}

// validateSample checks required fields on up to the first sampleSize
// records. A cheap sanity check, not full-set validation.
func validateSample(records []json.RawMessage) error {
	n := min(len(records), sampleSize)
	for i := 0; i < n; i++ {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(records[i], &fields); err != nil {
			return fmt.Errorf("%w: offer %d is not an object", ErrUnsupportedDataShape, i+1)
		}

		var missing []string
		for _, f := range requiredFields {
			if _, ok := fields[f]; !ok {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: offer %d is missing required fields: %s",
				ErrMissingRequiredFields, i+1, strings.Join(missing, ", "))
		}
	}
	return nil
}
