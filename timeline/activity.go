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

// ActivityType is the closed set of movement kinds found in Semantic
// Location History exports.
//
// https://developers.google.com/android/reference/com/google/android/gms/location/DetectedActivity
type ActivityType int

const (
	UnknownActivityType ActivityType = iota
	Boating
	Cycling
	Flying
	Hiking
	HorsebackRiding
	InBus
	InFerry
	InPassengerVehicle
	InSubway
	InTaxi
	InTrain
	InTram
	InVehicle
	Motorcycling
	Running
	Sailing
	Skiing
	Still
	Swimming
	Walking
)

var activityTypeNames = map[ActivityType]string{
	UnknownActivityType: "UNKNOWN_ACTIVITY_TYPE",
	Boating:             "BOATING",
	Cycling:             "CYCLING",
	Flying:              "FLYING",
	Hiking:              "HIKING",
	HorsebackRiding:     "HORSEBACK_RIDING",
	InBus:               "IN_BUS",
	InFerry:             "IN_FERRY",
	InPassengerVehicle:  "IN_PASSENGER_VEHICLE",
	InSubway:            "IN_SUBWAY",
	InTaxi:              "IN_TAXI",
	InTrain:             "IN_TRAIN",
	InTram:              "IN_TRAM",
	InVehicle:           "IN_VEHICLE",
	Motorcycling:        "MOTORCYCLING",
	Running:             "RUNNING",
	Sailing:             "SAILING",
	Skiing:              "SKIING",
	Still:               "STILL",
	Swimming:            "SWIMMING",
	Walking:             "WALKING",
}

var activityTypesByName = func() map[string]ActivityType {
	m := make(map[string]ActivityType, len(activityTypeNames))
	for t, name := range activityTypeNames {
		m[name] = t
	}
	return m
}()

var activityEmojis = map[ActivityType]string{
	UnknownActivityType: "❓",
	Boating:             "🛥️",
	Cycling:             "🚴",
	Flying:              "✈️",
	Hiking:              "🥾",
	HorsebackRiding:     "🏇",
	InBus:               "🚌",
	InFerry:             "⛴️",
	InPassengerVehicle:  "🚗",
	InSubway:            "🚇",
	InTaxi:              "🚕",
	InTrain:             "🚆",
	InTram:              "🚊",
	InVehicle:           "🚗",
	Motorcycling:        "🏍️",
	Running:             "🏃",
	Sailing:             "⛵",
	Skiing:              "⛷️",
	Still:               "🧍",
	Swimming:            "🏊",
	Walking:             "🚶",
}

// ParseActivityType maps an upstream activity string onto the closed
// enum. It is total: anything unrecognized (including the empty
// string) comes back as UnknownActivityType; callers keep the raw
// string for diagnostics.
func ParseActivityType(raw string) ActivityType {
	if t, ok := activityTypesByName[raw]; ok {
		return t
	}
	return UnknownActivityType
}

func (t ActivityType) String() string {
	if name, ok := activityTypeNames[t]; ok {
		return name
	}
	return activityTypeNames[UnknownActivityType]
}

// Emoji returns the pictogram used when the activity appears in an
// event summary.
func (t ActivityType) Emoji() string {
	if e, ok := activityEmojis[t]; ok {
		return e
	}
	return activityEmojis[UnknownActivityType]
}
