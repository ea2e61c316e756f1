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
	"sync"

	"go.uber.org/zap"
)

// languageDefaultKey is the override-table key consulted when no entry
// exists for the preferred zone.
const languageDefaultKey = "default"

// Cache wraps a lookup Service with a process-lifetime cache keyed by
// place id. It is the only shared mutable structure in the pipeline
// and is safe for concurrent use.
type Cache struct {
	service   Service
	languages map[string]string // IANA zone id (or "default") -> language code
	log       *zap.Logger

	mu      sync.Mutex
	entries map[string]Details
	keyMu   *mapMutex
}

// NewCache builds a Cache around service. languages maps IANA zone ids
// (or the literal key "default") to the language code passed to
// lookups; it may be nil.
func NewCache(service Service, languages map[string]string, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		service:   service,
		languages: languages,
		log:       logger,
		entries:   make(map[string]Details),
		keyMu:     newMapMutex(),
	}
}

// Resolve returns the details for placeID, fetching them at most once
// per process. A cached value is returned regardless of lookupEnabled;
// a place seen once during a run is never re-fetched nor re-gated.
// With lookups disabled a miss fails as ErrPlaceNotFound. Cancellation
// always propagates unwrapped.
func (c *Cache) Resolve(ctx context.Context, placeID, preferredZone string, lookupEnabled bool) (Details, error) {
	if placeID == "" {
		return Details{}, fmt.Errorf("empty place id: %w", ErrPlaceNotFound)
	}

	if d, ok := c.get(placeID); ok {
		return d, nil
	}
	if !lookupEnabled {
		return Details{}, fmt.Errorf("lookups disabled for %q: %w", placeID, ErrPlaceNotFound)
	}

	// collapse concurrent misses for the same key into one fetch;
	// values are stable per key, so waiting is never wasted
	c.keyMu.Lock(placeID)
	defer c.keyMu.Unlock(placeID)

	if d, ok := c.get(placeID); ok {
		return d, nil
	}

	lang := c.language(preferredZone)
	d, err := c.service.Lookup(ctx, placeID, lang)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Details{}, err
		}
		if errors.Is(err, ErrPlaceNotFound) {
			return Details{}, err
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return Details{}, err
		}
		return Details{}, &APIError{PlaceID: placeID, Err: err}
	}

	c.put(placeID, d)
	c.log.Debug("cached place details",
		zap.String("place_id", placeID),
		zap.String("name", d.Name),
		zap.String("language", lang))
	return d, nil
}

// language resolves the lookup language for a zone: the zone's entry
// wins, then the "default" entry, then none.
func (c *Cache) language(preferredZone string) string {
	if lang, ok := c.languages[preferredZone]; ok {
		return lang
	}
	if lang, ok := c.languages[languageDefaultKey]; ok {
		return lang
	}
	return ""
}

func (c *Cache) get(placeID string) (Details, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[placeID]
	return d, ok
}

func (c *Cache) put(placeID string, d Details) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[placeID] = d
}

// Len reports how many places have been resolved so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
