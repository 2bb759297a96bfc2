// ABOUTME: Now-playing track model fed by the metadata gateway
// ABOUTME: Formats ICY titles and picks the track playing at a given instant
package track

import (
	"strings"
	"time"
)

// Info describes one song as announced by the gateway.
type Info struct {
	Artist      string        `json:"artist"`
	Title       string        `json:"title"`
	AlbumCover  string        `json:"album_cover,omitempty"`
	ArtistImage string        `json:"artist_image,omitempty"`
	StartTime   time.Time     `json:"start_time"`
	Duration    time.Duration `json:"-"`
}

// StreamTitle joins artist and title the way stream titles are shown.
func (i Info) StreamTitle() string {
	switch {
	case i.Artist == "":
		return i.Title
	case i.Title == "":
		return i.Artist
	}
	return i.Artist + " - " + i.Title
}

// ICY renders the track as an ICY metadata string.
func (i Info) ICY() string {
	title := strings.ReplaceAll(i.StreamTitle(), "'", "")
	return "StreamTitle='" + title + "';"
}

// End is the instant the track stops; zero Duration means unknown.
func (i Info) End() time.Time {
	return i.StartTime.Add(i.Duration)
}

// Contains reports whether t falls in [StartTime, End). Tracks without a
// duration contain nothing.
func (i Info) Contains(t time.Time) bool {
	if i.Duration <= 0 {
		return false
	}
	return !t.Before(i.StartTime) && t.Before(i.End())
}

// Pick returns the track playing at instant at. History is oldest first.
// A track whose window contains at wins; otherwise the newest track that
// started at or before at.
func Pick(history []Info, at time.Time) (Info, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Contains(at) {
			return history[i], true
		}
	}
	for i := len(history) - 1; i >= 0; i-- {
		if !at.Before(history[i].StartTime) {
			return history[i], true
		}
	}
	return Info{}, false
}

// Next returns the earliest track starting after at.
func Next(history []Info, at time.Time) (Info, bool) {
	var (
		next  Info
		found bool
	)
	for _, t := range history {
		if !t.StartTime.After(at) {
			continue
		}
		if !found || t.StartTime.Before(next.StartTime) {
			next, found = t, true
		}
	}
	return next, found
}
