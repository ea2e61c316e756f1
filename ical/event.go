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

// Package ical renders synthesized events as VEVENT blocks inside a
// VCALENDAR envelope. The output format is a fixed byte-exact
// contract with the calendar clients that consume it; do not "fix"
// the field order, the escaping, or the bare-newline line endings.
package ical

import (
	"time"

	"github.com/google/uuid"
	"github.com/tripcal/tripcal/timeline"
)

// Event is a single calendar entry, produced once by synthesis and
// then only read. Description, URL and PlaceID are optional (empty
// means absent); Description is emitted verbatim, so whoever builds it
// is responsible for pre-escaping its content.
type Event struct {
	UID          string
	DTStamp      string
	LastModified string
	DTStart      timeline.RawTimestamp
	DTEnd        timeline.RawTimestamp
	Summary      string
	Location     string
	Latitude     float64
	Longitude    float64
	Description  string
	URL          string
	PlaceID      string
}

// timestamp layouts of the output format
const (
	localStampLayout = "20060102T150405"
	utcStampLayout   = "20060102T150405Z"
)

// EventUID derives a stable UID from the entry's last-edited
// timestamp; the same input always yields the same event identity
// across runs.
func EventUID(lastEdited string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("tripcal/"+lastEdited)).String()
}

// UTCStamp formats an ISO-8601 instant as a basic-format UTC
// timestamp. An unparseable instant is returned as-is rather than
// silently inventing a time.
func UTCStamp(instant string) string {
	t, err := time.Parse(time.RFC3339, instant)
	if err != nil {
		return instant
	}
	return t.UTC().Format(utcStampLayout)
}

// localStamp formats ts in its own zone. Zones that the runtime
// cannot load fall back to UTC.
func localStamp(ts timeline.RawTimestamp) (string, error) {
	t, err := time.Parse(time.RFC3339, ts.Instant)
	if err != nil {
		return "", err
	}
	loc, err := time.LoadLocation(ts.TimezoneID)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format(localStampLayout), nil
}
