/*
	Tripcal
	Copyright (c) 2024 Tripcal Authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// GoogleClient implements Service against the Google Places Details
// API.
type GoogleClient struct {
	client  *maps.Client
	log     *zap.Logger
	limiter io.Closer // nil when rate limiting is off
}

// NewGoogleClient builds a Places client. The rate limit is applied to
// the underlying HTTP transport so that a large export cannot hammer
// the API.
func NewGoogleClient(apiKey string, rl RateLimit, logger *zap.Logger) (*GoogleClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing API key")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := rl.RoundTripper(http.DefaultTransport)
	httpClient := &http.Client{Transport: transport}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey), maps.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("building maps client: %w", err)
	}

	g := &GoogleClient{client: client, log: logger}
	if c, ok := transport.(io.Closer); ok {
		g.limiter = c
	}
	return g, nil
}

// Close releases the rate limiter's refill goroutine. The client must
// not be used afterward.
func (g *GoogleClient) Close() error {
	if g.limiter != nil {
		return g.limiter.Close()
	}
	return nil
}

// Lookup fetches details for placeID. A missing place comes back as
// ErrPlaceNotFound, other upstream failures as *APIError, and
// cancellation passes through untouched.
func (g *GoogleClient) Lookup(ctx context.Context, placeID, languageCode string) (Details, error) {
	req := &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: languageCode,
	}

	resp, err := g.client.PlaceDetails(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Details{}, ctxErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Details{}, err
		}
		if isNotFound(err) {
			g.log.Debug("place not known upstream", zap.String("place_id", placeID))
			return Details{}, fmt.Errorf("%q: %w", placeID, ErrPlaceNotFound)
		}
		return Details{}, &APIError{PlaceID: placeID, Err: err}
	}

	return Details{
		PlaceID:          resp.PlaceID,
		Name:             resp.Name,
		FormattedAddress: resp.FormattedAddress,
		Latitude:         resp.Geometry.Location.Lat,
		Longitude:        resp.Geometry.Location.Lng,
		Types:            resp.Types,
		URL:              resp.URL,
	}, nil
}

// isNotFound sniffs the API status out of the client's error string;
// the maps client flattens upstream statuses into text.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "NOT_FOUND") || strings.Contains(msg, "ZERO_RESULTS")
}
