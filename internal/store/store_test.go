package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"offers-api/internal/domain"
)

// stubSource serves fixed bytes and counts fetches.
type stubSource struct {
	data    []byte
	err     error
	fetches int32
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(ctx context.Context) ([]byte, error) {
	atomic.AddInt32(&s.fetches, 1)
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

const validOffers = `[
	{"courseName": "Medicina", "rating": 4.9, "fullPrice": 1000, "offeredPrice": 800, "kind": "Presencial", "level": "bacharelado", "iesLogo": "logo.png", "iesName": "Uni A"},
	{"courseName": "Direito", "rating": 4.5, "fullPrice": 900, "offeredPrice": 600, "kind": "EaD", "level": "bacharelado", "iesLogo": "logo.png", "iesName": "Uni B"}
]`

func TestRawOffersLoadsAndCaches(t *testing.T) {
	src := &stubSource{data: []byte(validOffers)}
	st := New(src)

	offers, err := st.RawOffers(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("Expected 2 offers, got %d", len(offers))
	}
	if offers[0].CourseName != "Medicina" {
		t.Errorf("Expected first offer 'Medicina', got %q", offers[0].CourseName)
	}
	if offers[0].OfferedPrice != 800 {
		t.Errorf("Expected offered price 800, got %v", offers[0].OfferedPrice)
	}

	// Second call must hit the cache.
	if _, err := st.RawOffers(context.Background()); err != nil {
		t.Fatalf("Expected no error on cached read, got %v", err)
	}
	if src.fetches != 1 {
		t.Errorf("Expected 1 fetch, got %d", src.fetches)
	}
}

func TestRawOffersWrappedShape(t *testing.T) {
	src := &stubSource{data: []byte(`{"offers": ` + validOffers + `}`)}
	st := New(src)

	offers, err := st.RawOffers(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(offers) != 2 {
		t.Errorf("Expected 2 offers, got %d", len(offers))
	}
}

func TestRawOffersStripsBOM(t *testing.T) {
	src := &stubSource{data: append([]byte{0xEF, 0xBB, 0xBF}, []byte(validOffers)...)}
	st := New(src)

	offers, err := st.RawOffers(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(offers) != 2 {
		t.Errorf("Expected 2 offers, got %d", len(offers))
	}
}

func TestRawOffersEmptySource(t *testing.T) {
	src := &stubSource{data: []byte("   \n ")}
	st := New(src)

	_, err := st.RawOffers(context.Background())
	if !errors.Is(err, ErrEmptyDataSource) {
		t.Errorf("Expected ErrEmptyDataSource, got %v", err)
	}
}

func TestRawOffersMalformedJSON(t *testing.T) {
	src := &stubSource{data: []byte(`[{"courseName": "Medicina",]`)}
	st := New(src)

	_, err := st.RawOffers(context.Background())
	if !errors.Is(err, ErrMalformedDataSource) {
		t.Fatalf("Expected ErrMalformedDataSource, got %v", err)
	}
	if !strings.Contains(err.Error(), "JSON parsing error") {
		t.Errorf("Expected the message to flag a syntax error, got %q", err.Error())
	}
}

func TestRawOffersUnsupportedShape(t *testing.T) {
	testCases := []string{
		`"just a string"`,
		`42`,
		`{"items": []}`,
		`{"offers": "not an array"}`,
	}

	for _, tc := range testCases {
		st := New(&stubSource{data: []byte(tc)})
		_, err := st.RawOffers(context.Background())
		if !errors.Is(err, ErrUnsupportedDataShape) {
			t.Errorf("Expected ErrUnsupportedDataShape for %s, got %v", tc, err)
		}
	}
}

func TestRawOffersEmptyOfferSet(t *testing.T) {
	st := New(&stubSource{data: []byte(`[]`)})

	_, err := st.RawOffers(context.Background())
	if !errors.Is(err, ErrEmptyOfferSet) {
		t.Errorf("Expected ErrEmptyOfferSet, got %v", err)
	}
}

func TestRawOffersMissingRequiredFields(t *testing.T) {
	// rating and level are missing from the first record.
	data := `[{"courseName": "Medicina", "fullPrice": 1000, "offeredPrice": 800, "kind": "Presencial", "iesName": "Uni A"}]`
	st := New(&stubSource{data: []byte(data)})

	_, err := st.RawOffers(context.Background())
	if !errors.Is(err, ErrMissingRequiredFields) {
		t.Fatalf("Expected ErrMissingRequiredFields, got %v", err)
	}
	if !strings.Contains(err.Error(), "rating") {
		t.Errorf("Expected the message to name 'rating', got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "level") {
		t.Errorf("Expected the message to name 'level', got %q", err.Error())
	}
}

func TestRawOffersValidatesOnlyFirstThree(t *testing.T) {
	// The fourth record is broken, but only the first three are sampled.
	data := `[` + strings.TrimSuffix(strings.TrimPrefix(validOffers, "["), "]") + `,
	{"courseName": "Pedagogia", "rating": 4.0, "fullPrice": 500, "offeredPrice": 250, "kind": "ead", "level": "licenciatura", "iesLogo": "l.png", "iesName": "Uni C"},
	{"courseName": "Sem Campos"}
]`
	st := New(&stubSource{data: []byte(data)})

	offers, err := st.RawOffers(context.Background())
	if err != nil {
		t.Fatalf("Expected the sample check to pass, got %v", err)
	}
	if len(offers) != 4 {
		t.Errorf("Expected 4 offers, got %d", len(offers))
	}
}

func TestRawOffersFailureIsNotCached(t *testing.T) {
	src := &stubSource{err: errors.New("transient")}
	st := New(src)

	if _, err := st.RawOffers(context.Background()); err == nil {
		t.Fatal("Expected an error")
	}

	// Source recovers; the store must retry instead of serving the
	// poisoned result.
	src.err = nil
	src.data = []byte(validOffers)

	offers, err := st.RawOffers(context.Background())
	if err != nil {
		t.Fatalf("Expected recovery, got %v", err)
	}
	if len(offers) != 2 {
		t.Errorf("Expected 2 offers after recovery, got %d", len(offers))
	}
	if src.fetches != 2 {
		t.Errorf("Expected 2 fetches, got %d", src.fetches)
	}
}

func TestResetForcesReload(t *testing.T) {
	src := &stubSource{data: []byte(validOffers)}
	st := New(src)

	if _, err := st.RawOffers(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	st.Reset()

	if _, err := st.RawOffers(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if src.fetches != 2 {
		t.Errorf("Expected 2 fetches after reset, got %d", src.fetches)
	}
}

func TestConcurrentFirstLoadFetchesOnce(t *testing.T) {
	src := &stubSource{data: []byte(validOffers)}
	st := New(src)

	var wg sync.WaitGroup
	results := make([][]domain.RawOffer, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			offers, err := st.RawOffers(context.Background())
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
				return
			}
			results[i] = offers
		}(i)
	}
	wg.Wait()

	if src.fetches != 1 {
		t.Errorf("Expected a single fetch across concurrent callers, got %d", src.fetches)
	}
	for i, offers := range results {
		if len(offers) != 2 {
			t.Errorf("Caller %d saw %d offers, want 2", i, len(offers))
		}
	}
}

func TestLoadErrorNamesSource(t *testing.T) {
	st := New(&stubSource{data: []byte(`[]`)})

	_, err := st.RawOffers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "load offers from stub") {
		t.Errorf("Expected the wrapped error to name the source, got %v", err)
	}
}
