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
	"strconv"
	"strings"
)

// EscapedNewline is the field-internal line break of the output
// format: the two literal characters backslash and 'n', not an actual
// newline. Consumers unescape it on display.
const EscapedNewline = `\n`

// escapeCommas protects literal commas inside a property value.
func escapeCommas(s string) string {
	return strings.ReplaceAll(s, ",", `\,`)
}

// locationValue prepares a LOCATION property value: commas present in
// the source text are escaped first, then newlines become ", " — the
// separators introduced for newlines intentionally stay unescaped.
func locationValue(s string) string {
	return strings.ReplaceAll(escapeCommas(s), "\n", ", ")
}

// structuredTitle flattens text for the X-TITLE parameter, where
// neither newlines nor commas are representable.
func structuredTitle(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, ",", " ")
}

// FormatCoordinate renders a coordinate with up to six decimal
// digits, trailing zeros trimmed.
func FormatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FormatGeo renders "{lat},{lng}" with no surrounding whitespace.
func FormatGeo(lat, lng float64) string {
	return FormatCoordinate(lat) + "," + FormatCoordinate(lng)
}
