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

// Package convert drives the pipeline from raw location-history bytes
// to a rendered calendar: decode, map, enrich, synthesize, render.
package convert

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/tripcal/tripcal/ical"
	"github.com/tripcal/tripcal/places"
	"github.com/tripcal/tripcal/timeline"
)

// Options tunes one conversion run.
type Options struct {
	// LookupEnabled gates new place lookups. Already-cached places are
	// still used when false.
	LookupEnabled bool

	// Concurrency caps simultaneous enrichment jobs. Values below 1
	// mean sequential.
	Concurrency int
}

// Converter converts timeline files to calendars. It is safe to reuse
// across files; the place cache persists between calls.
type Converter struct {
	mapper *timeline.Mapper
	cache  *places.Cache
	opts   Options
	log    *zap.Logger
}

// NewConverter assembles a Converter from its collaborators.
func NewConverter(mapper *timeline.Mapper, cache *places.Cache, opts Options, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Converter{mapper: mapper, cache: cache, opts: opts, log: logger}
}

// ConvertFile converts one timeline export to a rendered calendar
// string. Enrichment of independent entries runs concurrently, but the
// event order always follows the timeline order: for each entry its
// activity segment precedes its place visit, and a visit precedes its
// child visits. Lookup failures degrade events to raw location data;
// only decode failures and cancellation make the conversion fail.
func (c *Converter) ConvertFile(ctx context.Context, data []byte) (string, error) {
	entries, err := timeline.DecodeTimeline(data)
	if err != nil {
		return "", err
	}

	jobs := c.collectJobs(entries)

	events := make([]ical.Event, len(jobs))
	sem := make(chan struct{}, c.opts.Concurrency)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var jobErr error

	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job enrichJob) {
			defer wg.Done()
			defer func() { <-sem }()
			ev, err := job(ctx)
			if err != nil {
				mu.Lock()
				if jobErr == nil {
					jobErr = err
				}
				mu.Unlock()
				return
			}
			events[i] = ev
		}(i, job)
	}
	wg.Wait()

	if jobErr != nil {
		return "", jobErr
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.log.Info("synthesized events",
		zap.Int("entries", len(entries)),
		zap.Int("events", len(events)),
		zap.Int("cached_places", c.cache.Len()))

	return ical.RenderCalendar(events)
}

// enrichJob resolves one entity's places and synthesizes its event.
// The only error an enrichJob returns is cancellation.
type enrichJob func(ctx context.Context) (ical.Event, error)

// collectJobs maps the entries and lays out one job per surviving
// entity, in final event order. Entities the mapper drops produce no
// job; that policy lives in the mapper, not here.
func (c *Converter) collectJobs(entries []timeline.Entry) []enrichJob {
	var jobs []enrichJob
	for _, entry := range entries {
		seg, visit := c.mapper.MapEntry(entry)
		if seg != nil {
			jobs = append(jobs, c.segmentJob(seg))
		}
		if visit != nil {
			jobs = append(jobs, c.visitJob(visit))
			for i := range visit.ChildVisits {
				jobs = append(jobs, c.childVisitJob(&visit.ChildVisits[i]))
			}
		}
	}
	return jobs
}

func (c *Converter) visitJob(v *timeline.PlaceVisit) enrichJob {
	return func(ctx context.Context) (ical.Event, error) {
		d, err := c.lookupPlace(ctx, v.Location.PlaceID, v.EventTimezone)
		if err != nil {
			return ical.Event{}, err
		}
		return SynthesizeVisit(v, d), nil
	}
}

func (c *Converter) childVisitJob(cv *timeline.ChildVisit) enrichJob {
	return func(ctx context.Context) (ical.Event, error) {
		d, err := c.lookupPlace(ctx, cv.Location.PlaceID, cv.EventTimezone)
		if err != nil {
			return ical.Event{}, err
		}
		return SynthesizeChildVisit(cv, d), nil
	}
}

func (c *Converter) segmentJob(seg *timeline.ActivitySegment) enrichJob {
	return func(ctx context.Context) (ical.Event, error) {
		var sd SegmentDetails
		var err error

		if sd.Start, err = c.lookupPlace(ctx, seg.StartLocation.PlaceID, seg.EventTimezone); err != nil {
			return ical.Event{}, err
		}
		if sd.End, err = c.lookupPlace(ctx, seg.EndLocation.PlaceID, seg.EventTimezone); err != nil {
			return ical.Event{}, err
		}
		if n := len(seg.WaypointPlaceIDs); n > 0 {
			if sd.FirstWaypoint, err = c.lookupPlace(ctx, seg.WaypointPlaceIDs[0], seg.EventTimezone); err != nil {
				return ical.Event{}, err
			}
			if n > 1 {
				if sd.LastWaypoint, err = c.lookupPlace(ctx, seg.WaypointPlaceIDs[n-1], seg.EventTimezone); err != nil {
					return ical.Event{}, err
				}
			}
		}
		return SynthesizeSegment(seg, sd), nil
	}
}

// lookupPlace resolves one place id through the cache. Lookup failures
// are logged and swallowed here so synthesis falls back to raw data;
// cancellation is the single error that escapes.
func (c *Converter) lookupPlace(ctx context.Context, placeID, preferredZone string) (*places.Details, error) {
	if placeID == "" {
		return nil, nil
	}
	d, err := c.cache.Resolve(ctx, placeID, preferredZone, c.opts.LookupEnabled)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var apiErr *places.APIError
		if errors.As(err, &apiErr) {
			c.log.Warn("place lookup failed, using raw location data",
				zap.String("place_id", placeID),
				zap.Error(err))
		} else {
			c.log.Debug("place not resolved, using raw location data",
				zap.String("place_id", placeID),
				zap.Error(err))
		}
		return nil, nil
	}
	return &d, nil
}
