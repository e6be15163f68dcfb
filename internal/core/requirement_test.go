package core

import (
	"reflect"
	"testing"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Dependency
	}{
		{
			name: "bare name",
			in:   "requests",
			want: Dependency{Name: "requests", Requirements: "*", Scope: Runtime},
		},
		{
			name: "pinned",
			in:   "requests >=2.28,<3",
			want: Dependency{Name: "requests", Requirements: ">=2.28,<3", Scope: Runtime},
		},
		{
			name: "parenthesized spec",
			in:   "click (>=8.0)",
			want: Dependency{Name: "click", Requirements: ">=8.0", Scope: Runtime},
		},
		{
			name: "extras",
			in:   "uvicorn[standard] >=0.20",
			want: Dependency{Name: "uvicorn", Extras: []string{"standard"}, Requirements: ">=0.20", Scope: Runtime},
		},
		{
			name: "environment marker",
			in:   `colorama ; platform_system == "Windows"`,
			want: Dependency{
				Name: "colorama", Requirements: "*", Scope: Runtime,
				Marker: `platform_system == "Windows"`, Optional: true,
			},
		},
		{
			name: "extra marker",
			in:   `pytest >=7 ; extra == "test"`,
			want: Dependency{
				Name: "pytest", Requirements: ">=7", Scope: Optional,
				Marker: `extra == "test"`, Optional: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRequirement(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRequirement(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatRequirementRoundTrip(t *testing.T) {
	tests := []struct {
		dep  Dependency
		want string
	}{
		{Dependency{Name: "requests", Requirements: "*"}, "requests"},
		{Dependency{Name: "requests", Requirements: ">=2.28"}, "requests >=2.28"},
		{
			Dependency{Name: "uvicorn", Extras: []string{"standard"}, Requirements: ">=0.20"},
			"uvicorn[standard] >=0.20",
		},
		{
			Dependency{Name: "pytest", Requirements: ">=7", Marker: `extra == "test"`},
			`pytest >=7 ; extra == "test"`,
		},
	}
	for _, tt := range tests {
		if got := FormatRequirement(tt.dep); got != tt.want {
			t.Errorf("FormatRequirement(%+v) = %q, want %q", tt.dep, got, tt.want)
		}
	}
}
