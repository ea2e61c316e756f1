package places_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/tripcal/tripcal/places"
)

// fakeService counts lookups and serves from a fixed table.
type fakeService struct {
	mu      sync.Mutex
	calls   int
	langs   []string
	details map[string]places.Details
	err     error
}

func (s *fakeService) Lookup(ctx context.Context, placeID, languageCode string) (places.Details, error) {
	if err := ctx.Err(); err != nil {
		return places.Details{}, err
	}
	s.mu.Lock()
	s.calls++
	s.langs = append(s.langs, languageCode)
	s.mu.Unlock()

	if s.err != nil {
		return places.Details{}, s.err
	}
	d, ok := s.details[placeID]
	if !ok {
		return places.Details{}, fmt.Errorf("lookup %q: %w", placeID, places.ErrPlaceNotFound)
	}
	return d, nil
}

func (s *fakeService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestCacheResolvesOnce(t *testing.T) {
	svc := &fakeService{details: map[string]places.Details{
		"P1": {PlaceID: "P1", Name: "Town Hall"},
	}}
	cache := places.NewCache(svc, nil, nil)
	ctx := context.Background()

	d, err := cache.Resolve(ctx, "P1", "", true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if d.Name != "Town Hall" {
		t.Errorf("Name = %q", d.Name)
	}

	// second resolve must not hit the service, even with lookups off
	if _, err := cache.Resolve(ctx, "P1", "", false); err != nil {
		t.Fatalf("cached Resolve with lookups disabled: %v", err)
	}
	if got := svc.callCount(); got != 1 {
		t.Errorf("service called %d times, want 1", got)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d", cache.Len())
	}
}

func TestCacheLookupDisabled(t *testing.T) {
	svc := &fakeService{details: map[string]places.Details{
		"P1": {PlaceID: "P1"},
	}}
	cache := places.NewCache(svc, nil, nil)

	_, err := cache.Resolve(context.Background(), "P1", "", false)
	if !errors.Is(err, places.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
	if svc.callCount() != 0 {
		t.Errorf("service called %d times, want 0", svc.callCount())
	}
}

func TestCacheEmptyPlaceID(t *testing.T) {
	cache := places.NewCache(&fakeService{}, nil, nil)
	if _, err := cache.Resolve(context.Background(), "", "", true); !errors.Is(err, places.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
}

func TestCacheLanguageFallback(t *testing.T) {
	svc := &fakeService{details: map[string]places.Details{
		"A": {PlaceID: "A"},
		"B": {PlaceID: "B"},
		"C": {PlaceID: "C"},
	}}
	cache := places.NewCache(svc, map[string]string{
		"Asia/Tokyo": "ja",
		"default":    "en",
	}, nil)
	ctx := context.Background()

	for _, tc := range []struct {
		placeID, zone, want string
	}{
		{"A", "Asia/Tokyo", "ja"},
		{"B", "Europe/Paris", "en"},
	} {
		if _, err := cache.Resolve(ctx, tc.placeID, tc.zone, true); err != nil {
			t.Fatalf("Resolve(%q): %v", tc.placeID, err)
		}
	}

	noDefault := places.NewCache(svc, map[string]string{"Asia/Tokyo": "ja"}, nil)
	if _, err := noDefault.Resolve(ctx, "C", "Europe/Paris", true); err != nil {
		t.Fatalf("Resolve(C): %v", err)
	}

	want := []string{"ja", "en", ""}
	if len(svc.langs) != len(want) {
		t.Fatalf("languages = %v, want %v", svc.langs, want)
	}
	for i := range want {
		if svc.langs[i] != want[i] {
			t.Errorf("language[%d] = %q, want %q", i, svc.langs[i], want[i])
		}
	}
}

func TestCacheNotFoundPassthrough(t *testing.T) {
	svc := &fakeService{} // empty table: everything is not found
	cache := places.NewCache(svc, nil, nil)

	_, err := cache.Resolve(context.Background(), "MISSING", "", true)
	if !errors.Is(err, places.ErrPlaceNotFound) {
		t.Fatalf("expected ErrPlaceNotFound, got %v", err)
	}
	var apiErr *places.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("not-found should not be wrapped as *APIError: %v", err)
	}
}

func TestCacheWrapsUpstreamFailures(t *testing.T) {
	svc := &fakeService{err: errors.New("upstream exploded")}
	cache := places.NewCache(svc, nil, nil)

	_, err := cache.Resolve(context.Background(), "P1", "", true)
	var apiErr *places.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.PlaceID != "P1" {
		t.Errorf("APIError.PlaceID = %q", apiErr.PlaceID)
	}

	// a failed lookup must not poison the cache
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after failure", cache.Len())
	}
}

func TestCacheCancellationUnwrapped(t *testing.T) {
	svc := &fakeService{details: map[string]places.Details{"P1": {PlaceID: "P1"}}}
	cache := places.NewCache(svc, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.Resolve(ctx, "P1", "", true)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var apiErr *places.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("cancellation must not be wrapped as *APIError: %v", err)
	}
}

func TestCacheConcurrentResolves(t *testing.T) {
	svc := &fakeService{details: map[string]places.Details{"P1": {PlaceID: "P1", Name: "Town Hall"}}}
	cache := places.NewCache(svc, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := cache.Resolve(ctx, "P1", "", true)
			if err != nil {
				t.Errorf("Resolve: %v", err)
				return
			}
			if d.Name != "Town Hall" {
				t.Errorf("Name = %q", d.Name)
			}
		}()
	}
	wg.Wait()

	if got := svc.callCount(); got != 1 {
		t.Errorf("service called %d times, want 1", got)
	}
}
