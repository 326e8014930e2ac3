package npm

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestRange(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"3.1.2", "^3.1.2"},
		{"0.4.0", "^0.4.0"},
		{"2.0.0-beta.3", "2.0.0-beta.3"},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			v := semver.MustParse(tt.version)
			if got := Range(v); got != tt.want {
				t.Errorf("Range(%s) = %q, want %q", tt.version, got, tt.want)
			}
		})
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		constraint, version string
		want                bool
	}{
		{"^3.0.0", "3.1.2", true},
		{"^3.0.0", "4.0.0", false},
		{"~1.2.0", "1.2.9", true},
		{"latest", "1.0.0", false},
	}
	for _, tt := range tests {
		got, err := Satisfies(tt.constraint, tt.version)
		if tt.constraint == "latest" {
			if err == nil {
				t.Errorf("Satisfies(%q) expected parse error", tt.constraint)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Satisfies(%q, %q) error: %v", tt.constraint, tt.version, err)
		}
		if got != tt.want {
			t.Errorf("Satisfies(%q, %q) = %v, want %v", tt.constraint, tt.version, got, tt.want)
		}
	}
}
