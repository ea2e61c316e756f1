package places_test

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/tripcal/tripcal/places"
)

type countingTripper struct {
	calls int
}

func (c *countingTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	return &http.Response{StatusCode: http.StatusOK, Request: req}, nil
}

func TestRateLimitDisabled(t *testing.T) {
	base := &countingTripper{}
	rt := places.RateLimit{}.RoundTripper(base)
	if rt != http.RoundTripper(base) {
		t.Error("zero policy should return the transport unchanged")
	}
}

func TestRateLimitAllowsBurst(t *testing.T) {
	base := &countingTripper{}
	rt := places.RateLimit{RequestsPerHour: 60, BurstSize: 3}.RoundTripper(base)

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			if _, err := rt.RoundTrip(req); err != nil {
				t.Errorf("RoundTrip: %v", err)
			}
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("burst of 3 requests should not block")
	}
	if base.calls != 3 {
		t.Errorf("transport called %d times, want 3", base.calls)
	}
}

func TestRateLimitClose(t *testing.T) {
	base := &countingTripper{}
	// one request per minute: no refill can happen during the test
	rt := places.RateLimit{RequestsPerHour: 60, BurstSize: 1}.RoundTripper(base)

	closer, ok := rt.(io.Closer)
	if !ok {
		t.Fatal("limited transport should expose Close")
	}

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	// drain the burst token, then stop the refiller
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	blocked := make(chan struct{})
	go func() {
		rt.RoundTrip(req)
		close(blocked)
	}()
	select {
	case <-blocked:
		t.Error("request got a token after Close")
	case <-time.After(200 * time.Millisecond):
	}
	if base.calls != 1 {
		t.Errorf("transport called %d times, want 1", base.calls)
	}
}
