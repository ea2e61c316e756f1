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

package ical

import (
	"fmt"
	"strings"
)

// structuredLocationRadius is the radius parameter emitted with every
// structured location; clients use it to draw the arrival circle.
const structuredLocationRadius = "141.175"

// RenderCalendar serializes events, in the order given, into one
// VCALENDAR envelope. Lines are terminated with a single bare newline
// and the result is plain UTF-8. Rendering the same sequence twice
// yields byte-identical output.
func RenderCalendar(events []Event) (string, error) {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\n")
	b.WriteString("VERSION:2.0\n")
	for i := range events {
		if err := renderEvent(&b, &events[i]); err != nil {
			return "", fmt.Errorf("event %d (%s): %w", i, events[i].UID, err)
		}
	}
	b.WriteString("END:VCALENDAR\n")
	return b.String(), nil
}

// renderEvent writes one VEVENT block. The field order is fixed.
func renderEvent(b *strings.Builder, e *Event) error {
	start, err := localStamp(e.DTStart)
	if err != nil {
		return fmt.Errorf("start timestamp: %w", err)
	}
	end, err := localStamp(e.DTEnd)
	if err != nil {
		return fmt.Errorf("end timestamp: %w", err)
	}

	title := structuredTitle(e.Location)
	if strings.TrimSpace(title) == "" {
		title = FormatGeo(e.Latitude, e.Longitude)
	}

	b.WriteString("BEGIN:VEVENT\n")
	b.WriteString("TRANSP:OPAQUE\n")
	b.WriteString("DTSTART;TZID=" + e.DTStart.TimezoneID + ":" + start + "\n")
	b.WriteString("DTEND;TZID=" + e.DTEnd.TimezoneID + ":" + end + "\n")
	b.WriteString("X-APPLE-STRUCTURED-LOCATION;VALUE=URI;X-APPLE-RADIUS=" + structuredLocationRadius +
		";X-TITLE=" + title + ":geo:" + FormatGeo(e.Latitude, e.Longitude) + "\n")
	b.WriteString("UID:" + e.UID + "\n")
	b.WriteString("DTSTAMP:" + e.DTStamp + "\n")
	b.WriteString("LOCATION:" + locationValue(e.Location) + "\n")
	b.WriteString("SUMMARY:" + e.Summary + "\n")
	if e.Description != "" {
		// pre-escaped by synthesis; emitted verbatim
		b.WriteString("DESCRIPTION:" + e.Description + "\n")
	}
	if e.URL != "" {
		b.WriteString("URL;VALUE=URI:" + escapeCommas(e.URL) + "\n")
	}
	b.WriteString("STATUS:CONFIRMED\n")
	b.WriteString("SEQUENCE:1\n")
	b.WriteString("LAST-MODIFIED:" + e.LastModified + "\n")
	b.WriteString("CREATED:" + e.LastModified + "\n")
	b.WriteString("X-APPLE-TRAVEL-ADVISORY-BEHAVIOR:AUTOMATIC\n")
	b.WriteString("END:VEVENT\n")
	return nil
}
