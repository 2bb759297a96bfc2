// ABOUTME: Tests for the track model
// ABOUTME: Verifies title formatting and playback-time track selection
package track

import (
	"testing"
	"time"
)

func TestInfo_ICY(t *testing.T) {
	info := Info{Artist: "Aimer", Title: "Kataomoi"}
	if got := info.ICY(); got != "StreamTitle='Aimer - Kataomoi';" {
		t.Errorf("unexpected ICY string %q", got)
	}

	quoted := Info{Artist: "Guns N' Roses", Title: "Don't Cry"}
	if got := quoted.ICY(); got != "StreamTitle='Guns N Roses - Dont Cry';" {
		t.Errorf("single quotes should be stripped, got %q", got)
	}

	if got := (Info{Title: "Solo"}).StreamTitle(); got != "Solo" {
		t.Errorf("expected bare title, got %q", got)
	}
}

func TestPick(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := []Info{
		{Title: "first", StartTime: base, Duration: 3 * time.Minute},
		{Title: "second", StartTime: base.Add(3 * time.Minute), Duration: 4 * time.Minute},
		{Title: "third", StartTime: base.Add(7 * time.Minute)},
	}

	tests := []struct {
		name  string
		at    time.Time
		want  string
		found bool
	}{
		{"before everything", base.Add(-time.Second), "", false},
		{"inside first window", base.Add(time.Minute), "first", true},
		{"window boundary", base.Add(3 * time.Minute), "second", true},
		{"unknown duration fallback", base.Add(10 * time.Minute), "third", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(history, tt.at)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if got.Title != tt.want {
				t.Errorf("picked %q, want %q", got.Title, tt.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history := []Info{
		{Title: "old", StartTime: base},
		{Title: "later", StartTime: base.Add(5 * time.Minute)},
		{Title: "soon", StartTime: base.Add(2 * time.Minute)},
	}

	got, ok := Next(history, base.Add(time.Minute))
	if !ok || got.Title != "soon" {
		t.Errorf("expected soon, got %q (found=%v)", got.Title, ok)
	}

	if _, ok := Next(history, base.Add(time.Hour)); ok {
		t.Error("expected no upcoming track")
	}
}
