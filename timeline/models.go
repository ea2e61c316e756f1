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

// The loose intermediate shapes of a Semantic Location History export.
// Coordinates are pointers so that an absent field can be told apart
// from a legitimate zero (the equator/prime meridian are real places).
// Everything else tolerates being missing; unknown fields are ignored.
//
// Awesome unofficial documentation: https://locationhistoryformat.com/

// Entry is one decoded timeline entry. An entry may carry an activity
// segment, a place visit, or both; callers process whichever are present.
type Entry struct {
	ActivitySegment *rawActivitySegment `json:"activitySegment"`
	PlaceVisit      *rawPlaceVisit      `json:"placeVisit"`
}

type rawLocation struct {
	PlaceID     string `json:"placeId"`
	LatitudeE7  *int64 `json:"latitudeE7"`
	LongitudeE7 *int64 `json:"longitudeE7"`
	Name        string `json:"name"`
	Address     string `json:"address"`
}

// rawDuration carries both timestamp styles Google has shipped over the
// years: epoch milliseconds as strings (older Takeouts) and ISO-8601
// instants (2021 and later).
type rawDuration struct {
	StartTimestamp   string `json:"startTimestamp"`
	EndTimestamp     string `json:"endTimestamp"`
	StartTimestampMs string `json:"startTimestampMs"`
	EndTimestampMs   string `json:"endTimestampMs"`
}

type rawActivity struct {
	ActivityType string  `json:"activityType"`
	Probability  float64 `json:"probability"`
}

type rawWaypoint struct {
	LatE7   *int64 `json:"latE7"`
	LngE7   *int64 `json:"lngE7"`
	PlaceID string `json:"placeId"`
}

type rawTransitStop struct {
	LatitudeE7  *int64 `json:"latitudeE7"`
	LongitudeE7 *int64 `json:"longitudeE7"`
	Name        string `json:"name"`
	PlaceID     string `json:"placeId"`
}

type rawActivitySegment struct {
	StartLocation *rawLocation  `json:"startLocation"`
	EndLocation   *rawLocation  `json:"endLocation"`
	Duration      *rawDuration  `json:"duration"`
	Distance      *int          `json:"distance"`
	ActivityType  string        `json:"activityType"`
	Confidence    string        `json:"confidence"`
	Activities    []rawActivity `json:"activities"`
	WaypointPath  struct {
		Waypoints      []rawWaypoint `json:"waypoints"`
		DistanceMeters float64       `json:"distanceMeters"`
	} `json:"waypointPath"`
	TransitPath struct {
		Name         string           `json:"name"`
		TransitStops []rawTransitStop `json:"transitStops"`
	} `json:"transitPath"`
	LastEditedTimestamp string `json:"lastEditedTimestamp"`
}

type rawPlaceVisit struct {
	Location            *rawLocation    `json:"location"`
	Duration            *rawDuration    `json:"duration"`
	PlaceConfidence     string          `json:"placeConfidence"`
	ChildVisits         []rawPlaceVisit `json:"childVisits"`
	LastEditedTimestamp string          `json:"lastEditedTimestamp"`
}
