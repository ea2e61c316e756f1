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

// Package places enriches timeline entries with details about the
// places they reference, caching lookups for the lifetime of the
// process.
package places

import (
	"context"
	"errors"
	"fmt"
)

// Details describes one place as reported by the lookup service. A
// value lives in the cache for the remainder of the process once
// fetched.
type Details struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Latitude         float64
	Longitude        float64
	Types            []string // category tags, most specific first
	URL              string   // canonical Google Maps URL
}

// ErrPlaceNotFound reports that the upstream service has no record for
// a place id, or that lookups were disabled for the run. Synthesis
// recovers from it by falling back to raw location data.
var ErrPlaceNotFound = errors.New("place not found")

// APIError reports an upstream lookup failure that is not a simple
// "no such place". It is recovered from the same way as
// ErrPlaceNotFound but stays distinguishable for logging.
type APIError struct {
	PlaceID string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("place lookup for %q failed: %v", e.PlaceID, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Service looks up details for a place id. languageCode may be empty,
// in which case the upstream default applies.
//
// Implementations must honor context cancellation and return the
// context's error unwrapped when it fires.
type Service interface {
	Lookup(ctx context.Context, placeID, languageCode string) (Details, error)
}
