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

package convert

import (
	"math"
	"strconv"
	"strings"

	"github.com/tripcal/tripcal/ical"
	"github.com/tripcal/tripcal/places"
	"github.com/tripcal/tripcal/timeline"
)

// placeURLPrefix builds a Google Maps link from a bare place id when no
// canonical URL was resolved.
const placeURLPrefix = "https://www.google.com/maps/place/?q=place_id:"

// milesZone is the only zone rendered in miles. This is intentionally a
// single literal comparison, not a locale table; extend it only with a
// concrete request from someone in another miles country.
const (
	milesZone  = "Europe/London"
	milesPerKm = 0.621
)

// categoryEmojis maps Google place category tags to the emoji that
// prefixes the event summary. Types are checked in the order the
// service reports them (most specific first); the first hit wins.
var categoryEmojis = map[string]string{
	"restaurant":         "🍽️",
	"meal_takeaway":      "🍽️",
	"food":               "🍽️",
	"cafe":               "☕",
	"bakery":             "🥐",
	"bar":                "🍺",
	"night_club":         "🪩",
	"lodging":            "🏨",
	"airport":            "✈️",
	"train_station":      "🚉",
	"transit_station":    "🚉",
	"bus_station":        "🚏",
	"park":               "🌳",
	"museum":             "🏛️",
	"art_gallery":        "🖼️",
	"movie_theater":      "🎬",
	"stadium":            "🏟️",
	"gym":                "🏋️",
	"shopping_mall":      "🛍️",
	"store":              "🛒",
	"supermarket":        "🛒",
	"hospital":           "🏥",
	"doctor":             "🏥",
	"pharmacy":           "💊",
	"school":             "🏫",
	"university":         "🎓",
	"library":            "📚",
	"church":             "⛪",
	"place_of_worship":   "🛐",
	"gas_station":        "⛽",
	"parking":            "🅿️",
	"bank":               "🏦",
	"post_office":        "📮",
	"zoo":                "🦁",
	"amusement_park":     "🎢",
	"tourist_attraction": "📸",
	"beach":              "🏖️",
	"campground":         "🏕️",
}

// genericPlaceEmoji prefixes visits with no resolved category.
const genericPlaceEmoji = "📍"

// SegmentDetails carries the optionally-resolved places of an activity
// segment. Any pointer may be nil; synthesis degrades to raw location
// data per field.
type SegmentDetails struct {
	Start         *places.Details
	End           *places.Details
	FirstWaypoint *places.Details
	LastWaypoint  *places.Details
}

// SynthesizeVisit turns a place visit into a calendar event. details
// may be nil when the lookup failed or was disabled.
func SynthesizeVisit(v *timeline.PlaceVisit, details *places.Details) ical.Event {
	return visitEvent(v.Location, v.DurationStart, v.DurationEnd, v.LastEditedTimestamp, details)
}

// SynthesizeChildVisit turns a nested visit into its own event.
func SynthesizeChildVisit(cv *timeline.ChildVisit, details *places.Details) ical.Event {
	return visitEvent(cv.Location, cv.DurationStart, cv.DurationEnd, cv.LastEditedTimestamp, details)
}

func visitEvent(loc timeline.Location, start, end timeline.RawTimestamp, lastEdited string, details *places.Details) ical.Event {
	e := ical.Event{
		UID:          ical.EventUID(lastEdited),
		DTStamp:      ical.UTCStamp(lastEdited),
		LastModified: ical.UTCStamp(lastEdited),
		DTStart:      start,
		DTEnd:        end,
		PlaceID:      loc.PlaceID,
	}

	if details != nil {
		e.Summary = placeEmoji(details.Types) + " " + details.Name
		e.Location = details.FormattedAddress
		e.Latitude = details.Latitude
		e.Longitude = details.Longitude
		e.URL = details.URL
	} else {
		e.Summary = genericPlaceEmoji + " " + loc.Name
		e.Location = strings.ReplaceAll(loc.Address, "\n", ",")
		e.Latitude = loc.Latitude()
		e.Longitude = loc.Longitude()
	}
	if e.URL == "" && loc.PlaceID != "" {
		e.URL = placeURLPrefix + loc.PlaceID
	}

	if loc.PlaceID != "" {
		e.Description = "Place ID: " + loc.PlaceID + ical.EscapedNewline +
			"Google Maps URL: " + e.URL
	}
	return e
}

// SynthesizeSegment turns an activity segment into a calendar event.
// All of d's fields are optional.
func SynthesizeSegment(seg *timeline.ActivitySegment, d SegmentDetails) ical.Event {
	e := ical.Event{
		UID:          ical.EventUID(seg.LastEditedTimestamp),
		DTStamp:      ical.UTCStamp(seg.LastEditedTimestamp),
		LastModified: ical.UTCStamp(seg.LastEditedTimestamp),
		DTStart:      seg.DurationStart,
		DTEnd:        seg.DurationEnd,
		Latitude:     seg.EndLocation.Latitude(),
		Longitude:    seg.EndLocation.Longitude(),
	}

	e.Summary = strings.TrimRight(
		seg.ActivityType.Emoji()+" "+distanceText(seg.DistanceMeters, seg.DurationEnd.TimezoneID)+" "+routeText(seg, d),
		" ")
	e.Location = segmentLocation(seg, d)
	e.Description = segmentDescription(seg, d)
	return e
}

// distanceText renders meters in the unit the zone prefers, to one
// decimal place with trailing zeros dropped ("15km", "9.3mi").
func distanceText(meters int, zoneID string) string {
	km := float64(meters) / 1000
	if zoneID == milesZone {
		return formatDistance(km*milesPerKm) + "mi"
	}
	return formatDistance(km) + "km"
}

func formatDistance(v float64) string {
	v = math.Round(v*10) / 10
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// routeText renders "(start ➡ end)". Resolved place names win; raw
// names are used only when both endpoints carry one; otherwise the
// route is omitted entirely.
func routeText(seg *timeline.ActivitySegment, d SegmentDetails) string {
	startName, endName := seg.StartLocation.Name, seg.EndLocation.Name
	if d.Start != nil || d.End != nil {
		if d.Start != nil {
			startName = d.Start.Name
		}
		if d.End != nil {
			endName = d.End.Name
		}
		return "(" + startName + " ➡ " + endName + ")"
	}
	if startName != "" && endName != "" {
		return "(" + startName + " ➡ " + endName + ")"
	}
	return ""
}

// segmentLocation picks the location text for a segment: the raw end
// address, then the last waypoint's resolved address, then bare
// coordinates of the end location.
func segmentLocation(seg *timeline.ActivitySegment, d SegmentDetails) string {
	if seg.EndLocation.Address != "" {
		return seg.EndLocation.Address
	}
	if d.LastWaypoint != nil && d.LastWaypoint.FormattedAddress != "" {
		return d.LastWaypoint.FormattedAddress
	}
	return ical.FormatGeo(seg.EndLocation.Latitude(), seg.EndLocation.Longitude())
}

// segmentDescription concatenates the endpoint and waypoint blocks in
// fixed order, each terminated by two escaped newlines. A block is
// omitted when neither resolved details nor raw data exist for it.
func segmentDescription(seg *timeline.ActivitySegment, d SegmentDetails) string {
	var b strings.Builder
	writeBlock(&b, "Start", placeText(d.Start, seg.StartLocation))
	writeBlock(&b, "End", placeText(d.End, seg.EndLocation))
	writeBlock(&b, "Via", detailsText(d.FirstWaypoint))
	writeBlock(&b, "Via", detailsText(d.LastWaypoint))
	return b.String()
}

func writeBlock(b *strings.Builder, label, text string) {
	if text == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(text)
	b.WriteString(ical.EscapedNewline)
	b.WriteString(ical.EscapedNewline)
}

// placeText describes one endpoint, preferring resolved details over
// the raw location.
func placeText(details *places.Details, loc timeline.Location) string {
	if s := detailsText(details); s != "" {
		return s
	}
	switch {
	case loc.Name != "" && loc.Address != "":
		return loc.Name + " (" + flattenNewlines(loc.Address) + ")"
	case loc.Name != "":
		return loc.Name
	case loc.Address != "":
		return flattenNewlines(loc.Address)
	}
	return ""
}

func detailsText(details *places.Details) string {
	if details == nil {
		return ""
	}
	if details.FormattedAddress != "" {
		return details.Name + " (" + details.FormattedAddress + ")"
	}
	return details.Name
}

// flattenNewlines keeps multi-line raw addresses on one logical line;
// actual newlines never reach the renderer from a description.
func flattenNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", ", ")
}

// placeEmoji picks the summary emoji for a resolved place from its
// category tags.
func placeEmoji(types []string) string {
	for _, t := range types {
		if e, ok := categoryEmojis[t]; ok {
			return e
		}
	}
	return genericPlaceEmoji
}
