package timeline_test

import (
	"errors"
	"testing"

	"github.com/tripcal/tripcal/timeline"
)

func TestDecodeTimelineEnvelope(t *testing.T) {
	data := []byte(`{
		"timelineObjects": [
			{"placeVisit": {"location": {"placeId": "P1", "latitudeE7": 536152405, "longitudeE7": -15639315}}},
			{"activitySegment": {"activityType": "WALKING"}}
		]
	}`)

	entries, err := timeline.DecodeTimeline(data)
	if err != nil {
		t.Fatalf("DecodeTimeline: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PlaceVisit == nil {
		t.Error("entry 0 should carry a place visit")
	}
	if entries[0].ActivitySegment != nil {
		t.Error("entry 0 should not carry an activity segment")
	}
	if entries[1].ActivitySegment == nil {
		t.Error("entry 1 should carry an activity segment")
	}
}

func TestDecodeTimelineBareArray(t *testing.T) {
	data := []byte(`[{"placeVisit": {"location": {"placeId": "P1"}}}]`)

	entries, err := timeline.DecodeTimeline(data)
	if err != nil {
		t.Fatalf("DecodeTimeline: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestDecodeTimelineIgnoresUnknownFields(t *testing.T) {
	data := []byte(`{
		"someFutureField": {"nested": true},
		"timelineObjects": [
			{"placeVisit": {"location": {"placeId": "P1"}, "brandNewThing": 42}}
		]
	}`)

	entries, err := timeline.DecodeTimeline(data)
	if err != nil {
		t.Fatalf("DecodeTimeline: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestDecodeTimelineInvalidJSON(t *testing.T) {
	entries, err := timeline.DecodeTimeline([]byte("some-invalid-json-string"))
	if entries != nil {
		t.Errorf("expected no entries, got %d", len(entries))
	}
	var decodeErr *timeline.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestDecodeTimelineMissingEntryList(t *testing.T) {
	var decodeErr *timeline.DecodeError
	if _, err := timeline.DecodeTimeline([]byte(`{"somethingElse": []}`)); !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestDecodeTimelineEmptyDocument(t *testing.T) {
	var decodeErr *timeline.DecodeError
	if _, err := timeline.DecodeTimeline([]byte("  \n")); !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestDecodeTimelineEmptyEntryList(t *testing.T) {
	entries, err := timeline.DecodeTimeline([]byte(`{"timelineObjects": []}`))
	if err != nil {
		t.Fatalf("DecodeTimeline: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
