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

// Package timeline decodes Google Location History ("Semantic Location
// History") exports and maps their loosely-typed entries into strict
// domain entities ready for calendar synthesis.
package timeline

const (
	// Coordinates are stored as integer degrees times 1e7 to preserve
	// precision through raw storage.
	places     = 7
	placesMult = 1e7
)

// Location is a point of interest attached to a timeline entry. A
// Location only exists when both coordinates were present upstream;
// every other field is best-effort.
type Location struct {
	PlaceID     string
	LatitudeE7  int64
	LongitudeE7 int64
	Name        string
	Address     string
}

// Latitude returns the latitude in floating degrees.
func (l Location) Latitude() float64 { return float64(l.LatitudeE7) / placesMult }

// Longitude returns the longitude in floating degrees.
func (l Location) Longitude() float64 { return float64(l.LongitudeE7) / placesMult }

// RawTimestamp pairs a UTC instant with the IANA zone the instant
// should be presented in. TimezoneID is "UTC" when no zone could be
// resolved from coordinates. Values are created once during mapping
// and never modified.
type RawTimestamp struct {
	Instant    string // ISO-8601, UTC
	TimezoneID string
}

// ActivityCandidate is one of the upstream guesses about what the user
// was doing during a segment. The raw string is kept next to the
// parsed type for diagnostics.
type ActivityCandidate struct {
	Type ActivityType
	Raw  string
}

// ActivitySegment is a movement between two locations. Both endpoint
// locations are guaranteed to be present; a segment that lacked either
// never survives mapping.
type ActivitySegment struct {
	Activities          []ActivityCandidate
	ActivityType        ActivityType
	RawActivityType     string
	DistanceMeters      int
	StartLocation       Location
	EndLocation         Location
	WaypointPlaceIDs    []string
	DurationStart       RawTimestamp
	DurationEnd         RawTimestamp
	LastEditedTimestamp string
	EventTimezone       string // empty when resolution failed
}

// PlaceVisit is a stay at a single location.
type PlaceVisit struct {
	Location            Location
	DurationStart       RawTimestamp
	DurationEnd         RawTimestamp
	LastEditedTimestamp string
	ChildVisits         []ChildVisit
	EventTimezone       string
}

// ChildVisit is a nested stay inside a PlaceVisit, for example a shop
// inside a mall. Unlike its parent, a child visit is dropped when the
// export carries no confirmed duration for it.
type ChildVisit struct {
	Location            Location
	DurationStart       RawTimestamp
	DurationEnd         RawTimestamp
	LastEditedTimestamp string
	EventTimezone       string
}
