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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeError reports a structural failure while decoding an export
// file. No entries are returned alongside one.
type DecodeError struct {
	Offset int64  // byte offset into the document, when known
	Path   string // field path, when known
	Err    error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Path != "" && e.Offset > 0:
		return fmt.Sprintf("decoding timeline at %q (offset %d): %v", e.Path, e.Offset, e.Err)
	case e.Offset > 0:
		return fmt.Sprintf("decoding timeline at offset %d: %v", e.Offset, e.Err)
	default:
		return fmt.Sprintf("decoding timeline: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeTimeline parses a Semantic Location History document into its
// timeline entries. It accepts both the canonical envelope (an object
// with a "timelineObjects" array) and a bare array of entries. Unknown
// fields are ignored. A malformed document or a missing top-level
// entry list yields a *DecodeError and no entries.
func DecodeTimeline(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, &DecodeError{Err: errors.New("empty document")}
	}

	if trimmed[0] == '[' {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, decodeError(err)
		}
		return entries, nil
	}

	var doc struct {
		TimelineObjects []Entry `json:"timelineObjects"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, decodeError(err)
	}
	if doc.TimelineObjects == nil {
		return nil, &DecodeError{Path: "timelineObjects", Err: errors.New("missing timeline entry list")}
	}
	return doc.TimelineObjects, nil
}

// decodeError pulls offset/path details out of the standard library's
// error types where available.
func decodeError(err error) *DecodeError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &DecodeError{Offset: syntaxErr.Offset, Err: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{Offset: typeErr.Offset, Path: typeErr.Field, Err: err}
	}
	return &DecodeError{Err: err}
}
