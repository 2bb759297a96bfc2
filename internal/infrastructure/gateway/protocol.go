// ABOUTME: Wire types for the listen.moe metadata gateway
// ABOUTME: Decodes hello and track update frames into track.Info
package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harper/listenmoe-ingest/internal/domain/track"
)

const (
	opHello        = 0
	opDispatch     = 1
	opHeartbeat    = 9
	opHeartbeatAck = 10

	eventTrackUpdate = "TRACK_UPDATE"

	albumCoverBase  = "https://cdn.listen.moe/covers/"
	artistImageBase = "https://cdn.listen.moe/artists/"
)

var heartbeatFrame = []byte(`{"op":9}`)

type envelope struct {
	Op int             `json:"op"`
	T  string          `json:"t,omitempty"`
	D  json.RawMessage `json:"d,omitempty"`
}

type hello struct {
	Message   string `json:"message"`
	Heartbeat int64  `json:"heartbeat"`
}

type songPayload struct {
	Song      song   `json:"song"`
	StartTime string `json:"startTime"`
}

type song struct {
	Title    *string  `json:"title"`
	Artists  []artist `json:"artists"`
	Albums   []album  `json:"albums"`
	Duration *int     `json:"duration"`
}

type artist struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

type album struct {
	Image *string `json:"image"`
}

// heartbeatInterval extracts the interval from a HELLO frame. A zero result
// means the server asked for no heartbeats.
func heartbeatInterval(env envelope) (time.Duration, error) {
	if env.Op != opHello {
		return 0, fmt.Errorf("expected hello, got op %d", env.Op)
	}
	if len(env.D) == 0 {
		return 0, nil
	}
	var h hello
	if err := json.Unmarshal(env.D, &h); err != nil {
		return 0, fmt.Errorf("parse hello: %w", err)
	}
	return time.Duration(h.Heartbeat) * time.Millisecond, nil
}

// parseTrack converts a TRACK_UPDATE payload.
func parseTrack(d json.RawMessage) (track.Info, error) {
	var p songPayload
	if err := json.Unmarshal(d, &p); err != nil {
		return track.Info{}, fmt.Errorf("parse track update: %w", err)
	}

	start, err := time.Parse(time.RFC3339, p.StartTime)
	if err != nil {
		return track.Info{}, fmt.Errorf("parse start time: %w", err)
	}

	info := track.Info{
		Title:     "unknown title",
		Artist:    "Unknown artist",
		StartTime: start.UTC(),
	}

	if p.Song.Title != nil {
		info.Title = *p.Song.Title
	}

	if len(p.Song.Artists) > 0 {
		names := make([]string, 0, len(p.Song.Artists))
		for _, a := range p.Song.Artists {
			if a.Name != nil {
				names = append(names, *a.Name)
			}
		}
		info.Artist = strings.Join(names, ", ")

		if img := p.Song.Artists[0].Image; img != nil {
			info.ArtistImage = artistImageBase + *img
		}
	}

	if len(p.Song.Albums) > 0 && p.Song.Albums[0].Image != nil {
		info.AlbumCover = albumCoverBase + *p.Song.Albums[0].Image
	}

	if p.Song.Duration != nil {
		info.Duration = time.Duration(*p.Song.Duration) * time.Second
	}

	return info, nil
}
