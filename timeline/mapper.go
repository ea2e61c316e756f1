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

package timeline

import (
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// utcZoneID is the zone RawTimestamps fall back to when no timezone
// polygon matches the entry's coordinates.
const utcZoneID = "UTC"

// Mapper turns decoded entries into domain entities. Entries that are
// logically incomplete (missing coordinates, children without a
// duration) are skipped silently; that is data-completeness policy,
// not an error.
type Mapper struct {
	Resolver TimezoneResolver
	Log      *zap.Logger
}

// NewMapper returns a Mapper using the given resolver. A nil logger
// disables mapping diagnostics.
func NewMapper(resolver TimezoneResolver, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{Resolver: resolver, Log: logger}
}

// MapEntry maps one timeline entry into up to one activity segment and
// up to one place visit. Either or both results may be nil.
func (m *Mapper) MapEntry(e Entry) (*ActivitySegment, *PlaceVisit) {
	var seg *ActivitySegment
	var visit *PlaceVisit
	if e.ActivitySegment != nil {
		seg = m.activitySegment(e.ActivitySegment)
	}
	if e.PlaceVisit != nil {
		visit = m.placeVisit(e.PlaceVisit)
	}
	return seg, visit
}

func (m *Mapper) activitySegment(raw *rawActivitySegment) *ActivitySegment {
	start, ok := mapLocation(raw.StartLocation)
	if !ok {
		m.Log.Debug("dropping activity segment: start location incomplete")
		return nil
	}
	end, ok := mapLocation(raw.EndLocation)
	if !ok {
		m.Log.Debug("dropping activity segment: end location incomplete")
		return nil
	}

	startInstant, endInstant, ok := mapDuration(raw.Duration)
	if !ok {
		m.Log.Debug("dropping activity segment: no duration")
		return nil
	}

	// the segment's zone comes from where the movement ended
	zone, resolved := m.resolveZone(end)

	activities := make([]ActivityCandidate, 0, len(raw.Activities))
	for _, a := range raw.Activities {
		activities = append(activities, ActivityCandidate{
			Type: ParseActivityType(a.ActivityType),
			Raw:  a.ActivityType,
		})
	}

	seg := &ActivitySegment{
		Activities:          activities,
		ActivityType:        ParseActivityType(raw.ActivityType),
		RawActivityType:     raw.ActivityType,
		DistanceMeters:      mapDistance(raw),
		StartLocation:       start,
		EndLocation:         end,
		WaypointPlaceIDs:    waypointPlaceIDs(raw),
		DurationStart:       RawTimestamp{Instant: startInstant, TimezoneID: zone},
		DurationEnd:         RawTimestamp{Instant: endInstant, TimezoneID: zone},
		LastEditedTimestamp: defaultString(raw.LastEditedTimestamp, endInstant),
	}
	if resolved {
		seg.EventTimezone = zone
	}
	return seg
}

func (m *Mapper) placeVisit(raw *rawPlaceVisit) *PlaceVisit {
	loc, ok := mapLocation(raw.Location)
	if !ok {
		m.Log.Debug("dropping place visit: location incomplete")
		return nil
	}
	startInstant, endInstant, ok := mapDuration(raw.Duration)
	if !ok {
		m.Log.Debug("dropping place visit: no duration",
			zap.String("place_id", loc.PlaceID))
		return nil
	}

	zone, resolved := m.resolveZone(loc)

	visit := &PlaceVisit{
		Location:            loc,
		DurationStart:       RawTimestamp{Instant: startInstant, TimezoneID: zone},
		DurationEnd:         RawTimestamp{Instant: endInstant, TimezoneID: zone},
		LastEditedTimestamp: defaultString(raw.LastEditedTimestamp, endInstant),
	}
	if resolved {
		visit.EventTimezone = zone
	}

	for i := range raw.ChildVisits {
		if child := m.childVisit(&raw.ChildVisits[i]); child != nil {
			visit.ChildVisits = append(visit.ChildVisits, *child)
		}
	}

	return visit
}

// childVisit is stricter than placeVisit about duration: the export
// often records nested visits without one, and those are skipped.
func (m *Mapper) childVisit(raw *rawPlaceVisit) *ChildVisit {
	loc, ok := mapLocation(raw.Location)
	if !ok {
		m.Log.Debug("dropping child visit: location incomplete")
		return nil
	}
	startInstant, endInstant, ok := mapDuration(raw.Duration)
	if !ok {
		m.Log.Debug("dropping child visit: no confirmed duration",
			zap.String("place_id", loc.PlaceID))
		return nil
	}

	// each child resolves its own zone; nested places can legitimately
	// sit in a different polygon than their parent near borders
	zone, resolved := m.resolveZone(loc)

	child := &ChildVisit{
		Location:            loc,
		DurationStart:       RawTimestamp{Instant: startInstant, TimezoneID: zone},
		DurationEnd:         RawTimestamp{Instant: endInstant, TimezoneID: zone},
		LastEditedTimestamp: defaultString(raw.LastEditedTimestamp, endInstant),
	}
	if resolved {
		child.EventTimezone = zone
	}
	return child
}

// resolveZone looks up the IANA zone for the location's coordinates.
// The returned zone is always usable for timestamp formatting; the
// boolean reports whether it came from an actual polygon match.
func (m *Mapper) resolveZone(loc Location) (string, bool) {
	if m.Resolver == nil {
		return utcZoneID, false
	}
	zone, ok := m.Resolver.Resolve(loc.Latitude(), loc.Longitude())
	if !ok {
		return utcZoneID, false
	}
	return zone, true
}

// mapLocation promotes a raw location to the domain type. A location
// without both coordinates is meaningless and aborts the parent
// entity's mapping.
func mapLocation(raw *rawLocation) (Location, bool) {
	if raw == nil || raw.LatitudeE7 == nil || raw.LongitudeE7 == nil {
		return Location{}, false
	}
	return Location{
		PlaceID:     raw.PlaceID,
		LatitudeE7:  *raw.LatitudeE7,
		LongitudeE7: *raw.LongitudeE7,
		Name:        raw.Name,
		Address:     raw.Address,
	}, true
}

// mapDuration normalizes either duration style into ISO-8601 UTC
// instants. It reports false when the export carries no duration.
func mapDuration(raw *rawDuration) (start, end string, ok bool) {
	if raw == nil {
		return "", "", false
	}
	start, ok = normalizeInstant(raw.StartTimestamp, raw.StartTimestampMs)
	if !ok {
		return "", "", false
	}
	end, ok = normalizeInstant(raw.EndTimestamp, raw.EndTimestampMs)
	if !ok {
		return "", "", false
	}
	return start, end, true
}

// normalizeInstant prefers the ISO-8601 instant and falls back to the
// epoch-milliseconds string of older exports.
func normalizeInstant(iso, ms string) (string, bool) {
	if iso != "" {
		return iso, true
	}
	if ms == "" {
		return "", false
	}
	millis, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return "", false
	}
	return time.UnixMilli(millis).UTC().Format(time.RFC3339), true
}

// mapDistance resolves the segment distance: the explicit field wins,
// then the measured path distance truncated to whole meters, then 0.
func mapDistance(raw *rawActivitySegment) int {
	if raw.Distance != nil {
		return *raw.Distance
	}
	if raw.WaypointPath.DistanceMeters > 0 {
		return int(math.Trunc(raw.WaypointPath.DistanceMeters))
	}
	return 0
}

// waypointPlaceIDs gathers place ids along the route, in order, from
// both the waypoint path and any transit stops. Empty ids are dropped
// and repeats keep only their first occurrence.
func waypointPlaceIDs(raw *rawActivitySegment) []string {
	var ids []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, wp := range raw.WaypointPath.Waypoints {
		add(wp.PlaceID)
	}
	for _, stop := range raw.TransitPath.TransitStops {
		add(stop.PlaceID)
	}
	return ids
}

func defaultString(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
