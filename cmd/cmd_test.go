package tpcmd

import (
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	for _, tc := range []struct {
		outputDir, input, want string
	}{
		{"", "exports/2021_JUNE.json", filepath.Join("exports", "2021_JUNE.ics")},
		{"", "plain.json", "plain.ics"},
		{"/tmp/out", "exports/2021_JUNE.json", filepath.Join("/tmp/out", "2021_JUNE.ics")},
		{"", "noext", "noext.ics"},
	} {
		if got := outputPath(tc.outputDir, tc.input); got != tc.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tc.outputDir, tc.input, got, tc.want)
		}
	}
}
