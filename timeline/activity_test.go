package timeline_test

import (
	"testing"

	"github.com/tripcal/tripcal/timeline"
)

func TestParseActivityType(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want timeline.ActivityType
	}{
		{"WALKING", timeline.Walking},
		{"IN_PASSENGER_VEHICLE", timeline.InPassengerVehicle},
		{"FLYING", timeline.Flying},
		{"CYCLING", timeline.Cycling},
		{"IN_TRAIN", timeline.InTrain},
		{"UNKNOWN_ACTIVITY_TYPE", timeline.UnknownActivityType},
		{"SOME_NEW_ACTIVITY", timeline.UnknownActivityType},
		{"walking", timeline.UnknownActivityType},
		{"", timeline.UnknownActivityType},
	} {
		if got := timeline.ParseActivityType(tc.raw); got != tc.want {
			t.Errorf("ParseActivityType(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestActivityTypeRoundTrip(t *testing.T) {
	for at := timeline.UnknownActivityType; at <= timeline.Walking; at++ {
		if got := timeline.ParseActivityType(at.String()); got != at {
			t.Errorf("ParseActivityType(%q) = %v, want %v", at.String(), got, at)
		}
	}
}

func TestActivityTypeEmoji(t *testing.T) {
	if got := timeline.Walking.Emoji(); got != "🚶" {
		t.Errorf("Walking.Emoji() = %q", got)
	}
	if got := timeline.UnknownActivityType.Emoji(); got != "❓" {
		t.Errorf("UnknownActivityType.Emoji() = %q", got)
	}
	// out of range values still render something
	if got := timeline.ActivityType(999).Emoji(); got != "❓" {
		t.Errorf("ActivityType(999).Emoji() = %q", got)
	}
}
