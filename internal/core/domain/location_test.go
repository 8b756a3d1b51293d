package domain_test

import (
	"testing"

	"go.trai.ch/larder/internal/core/domain"
)

func TestLocationsEqual(t *testing.T) {
	tests := []struct {
		name string
		a    domain.Location
		b    domain.Location
		want bool
	}{
		{
			name: "nil means registry",
			a:    nil,
			b:    domain.RegistryLocation{},
			want: true,
		},
		{
			name: "same path",
			a:    domain.PathLocation{Path: "/proj/vendor/foo"},
			b:    domain.PathLocation{Path: "/proj/vendor/foo"},
			want: true,
		},
		{
			name: "different path",
			a:    domain.PathLocation{Path: "/proj/vendor/foo"},
			b:    domain.PathLocation{Path: "/proj/vendor/bar"},
			want: false,
		},
		{
			name: "same repository and ref",
			a:    domain.SCMLocation{URL: "https://example.com/foo.git", Ref: "v2"},
			b:    domain.SCMLocation{URL: "https://example.com/foo.git", Ref: "v2"},
			want: true,
		},
		{
			name: "ref changed",
			a:    domain.SCMLocation{URL: "https://example.com/foo.git", Ref: "v2"},
			b:    domain.SCMLocation{URL: "https://example.com/foo.git", Ref: "v3"},
			want: false,
		},
		{
			name: "different kinds",
			a:    domain.PathLocation{Path: "/x"},
			b:    domain.RegistryLocation{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.LocationsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("LocationsEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocationStrings(t *testing.T) {
	if got := (domain.RegistryLocation{}).String(); got != "registry" {
		t.Errorf("registry location string = %q", got)
	}
	if got := (domain.PathLocation{Path: "../foo"}).String(); got != "path:../foo" {
		t.Errorf("path location string = %q", got)
	}
	if got := (domain.SCMLocation{URL: "https://example.com/foo.git"}).String(); got != "git:https://example.com/foo.git" {
		t.Errorf("scm location string without ref = %q", got)
	}
	if got := (domain.SCMLocation{URL: "https://example.com/foo.git", Ref: "v2"}).String(); got != "git:https://example.com/foo.git#v2" {
		t.Errorf("scm location string with ref = %q", got)
	}
}

func TestLocationOrRegistry(t *testing.T) {
	if domain.LocationOrRegistry(nil).Kind() != domain.LocationRegistry {
		t.Error("nil location should default to registry")
	}
	loc := domain.SCMLocation{URL: "https://example.com/foo.git"}
	if domain.LocationOrRegistry(loc) != loc {
		t.Error("non-nil location should pass through unchanged")
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Location
	}{
		{in: "registry", want: domain.RegistryLocation{}},
		{in: "path:../foo", want: domain.PathLocation{Path: "../foo"}},
		{in: "git:https://example.com/foo.git", want: domain.SCMLocation{URL: "https://example.com/foo.git"}},
		{in: "git:https://example.com/foo.git#v2", want: domain.SCMLocation{URL: "https://example.com/foo.git", Ref: "v2"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseLocation(tt.in)
			if err != nil {
				t.Fatalf("ParseLocation(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLocation(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseLocationRoundTrips(t *testing.T) {
	for _, loc := range []domain.Location{
		domain.RegistryLocation{},
		domain.PathLocation{Path: "vendor/foo"},
		domain.SCMLocation{URL: "git@example.com:foo.git", Ref: "main"},
	} {
		parsed, err := domain.ParseLocation(loc.String())
		if err != nil {
			t.Fatalf("ParseLocation(%q) error: %v", loc.String(), err)
		}
		if parsed != loc {
			t.Errorf("round trip of %q = %#v", loc.String(), parsed)
		}
	}
}

func TestParseLocationRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "path:", "git:", "http://example.com"} {
		if _, err := domain.ParseLocation(in); err == nil {
			t.Errorf("ParseLocation(%q) should fail", in)
		}
	}
}
