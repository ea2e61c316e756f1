package ical

import "testing"

func TestFormatCoordinate(t *testing.T) {
	for _, tc := range []struct {
		v    float64
		want string
	}{
		{53.6152405, "53.61524"},
		{-1.5639315, "-1.563932"},
		{35.7, "35.7"},
		{0, "0"},
		{139.8, "139.8"},
		{1.123456789, "1.123457"},
		{-0.25, "-0.25"},
	} {
		if got := FormatCoordinate(tc.v); got != tc.want {
			t.Errorf("FormatCoordinate(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestFormatGeo(t *testing.T) {
	if got := FormatGeo(53.6152405, -1.5639315); got != "53.61524,-1.563932" {
		t.Errorf("FormatGeo = %q", got)
	}
}

func TestLocationValue(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		// source commas are escaped before newlines become separators
		{"1 Main St, Spring\nWakefield", `1 Main St\, Spring, Wakefield`},
		{"plain", "plain"},
		{"a,b", `a\,b`},
		{"line1\nline2", "line1, line2"},
		{"", ""},
	} {
		if got := locationValue(tc.in); got != tc.want {
			t.Errorf("locationValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStructuredTitle(t *testing.T) {
	if got := structuredTitle("1 Main St, Spring\nWakefield"); got != "1 Main St  Spring Wakefield" {
		t.Errorf("structuredTitle = %q", got)
	}
}

func TestUTCStamp(t *testing.T) {
	if got := UTCStamp("2021-06-01T17:00:00+09:00"); got != "20210601T080000Z" {
		t.Errorf("UTCStamp = %q", got)
	}
	// unparseable input passes through rather than inventing a time
	if got := UTCStamp("not-a-time"); got != "not-a-time" {
		t.Errorf("UTCStamp = %q", got)
	}
}
