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
	"fmt"

	"github.com/ringsaturn/tzf"
)

// TimezoneResolver maps coordinates to an IANA zone id. A false return
// means no zone polygon matched, which callers treat as "format in UTC".
type TimezoneResolver interface {
	Resolve(latitude, longitude float64) (string, bool)
}

type tzfResolver struct {
	finder tzf.F
}

// NewTimezoneResolver returns a resolver backed by an embedded,
// compressed copy of the timezone boundary data. Construction is
// expensive (tens of MB decompressed); build one and share it.
func NewTimezoneResolver() (TimezoneResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("loading timezone boundary data: %w", err)
	}
	return &tzfResolver{finder: finder}, nil
}

func (r *tzfResolver) Resolve(latitude, longitude float64) (string, bool) {
	name := r.finder.GetTimezoneName(longitude, latitude)
	return name, name != ""
}
