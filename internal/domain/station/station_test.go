// ABOUTME: Tests for the station catalog
// ABOUTME: Verifies every station answers every accessor with the published endpoints
package station

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		station     Station
		name        string
		displayName string
		streamURL   string
		wsURL       string
	}{
		{Jpop, "jpop", "J-POP", "https://listen.moe/stream", "wss://listen.moe/gateway_v2"},
		{Kpop, "kpop", "K-POP", "https://listen.moe/kpop/stream", "wss://listen.moe/kpop/gateway_v2"},
	}

	if len(tests) != len(All()) {
		t.Fatalf("expected %d stations in catalog, got %d", len(tests), len(All()))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.station.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
			if got := tt.station.DisplayName(); got != tt.displayName {
				t.Errorf("DisplayName() = %q, want %q", got, tt.displayName)
			}
			if got := tt.station.StreamURL(); got != tt.streamURL {
				t.Errorf("StreamURL() = %q, want %q", got, tt.streamURL)
			}
			if got := tt.station.WSURL(); got != tt.wsURL {
				t.Errorf("WSURL() = %q, want %q", got, tt.wsURL)
			}
		})
	}
}

func TestAll_Invariants(t *testing.T) {
	namePattern := regexp.MustCompile(`^[a-z]+$`)

	for _, s := range All() {
		if !s.Valid() {
			t.Errorf("station %d should be valid", int(s))
		}
		if s.Name() == "" || s.DisplayName() == "" || s.StreamURL() == "" || s.WSURL() == "" {
			t.Errorf("station %d has an empty attribute", int(s))
		}
		if !namePattern.MatchString(s.Name()) {
			t.Errorf("name %q should match [a-z]+", s.Name())
		}
		if !strings.HasPrefix(s.StreamURL(), "https://") {
			t.Errorf("stream URL %q should use https", s.StreamURL())
		}
		if !strings.HasPrefix(s.WSURL(), "wss://") {
			t.Errorf("gateway URL %q should use wss", s.WSURL())
		}
	}
}

func TestScenarios(t *testing.T) {
	if Jpop.StreamURL() != "https://listen.moe/stream" || Jpop.Name() != "jpop" {
		t.Errorf("unexpected jpop descriptor: %q %q", Jpop.StreamURL(), Jpop.Name())
	}
	if Kpop.WSURL() != "wss://listen.moe/kpop/gateway_v2" || Kpop.DisplayName() != "K-POP" {
		t.Errorf("unexpected kpop descriptor: %q %q", Kpop.WSURL(), Kpop.DisplayName())
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("KPOP")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s != Kpop {
		t.Errorf("expected Kpop, got %v", s)
	}

	if _, err := Parse("cpop"); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("expected ErrUnknownStation, got %v", err)
	}
}

func TestString(t *testing.T) {
	if Jpop.String() != "jpop" {
		t.Errorf("expected jpop, got %s", Jpop.String())
	}
	if Station(42).Valid() {
		t.Error("Station(42) should not be valid")
	}
	if Station(42).String() != "Station(42)" {
		t.Errorf("unexpected String for invalid station: %s", Station(42).String())
	}
}
