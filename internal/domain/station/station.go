// ABOUTME: Closed catalog of listen.moe stations and their endpoints
// ABOUTME: Each station maps to a stream URL, a gateway URL, and its names
package station

import (
	"errors"
	"fmt"
	"strings"
)

// Station identifies one of the radio streams served by listen.moe.
type Station int

const (
	Jpop Station = iota
	Kpop

	stationCount
)

var ErrUnknownStation = errors.New("unknown station")

type descriptor struct {
	streamURL   string
	wsURL       string
	name        string
	displayName string
}

// descriptors is pinned to stationCount entries; a new variant without a
// descriptor does not compile.
var descriptors [stationCount]descriptor = [...]descriptor{
	Jpop: {
		streamURL:   "https://listen.moe/stream",
		wsURL:       "wss://listen.moe/gateway_v2",
		name:        "jpop",
		displayName: "J-POP",
	},
	Kpop: {
		streamURL:   "https://listen.moe/kpop/stream",
		wsURL:       "wss://listen.moe/kpop/gateway_v2",
		name:        "kpop",
		displayName: "K-POP",
	},
}

// StreamURL is the HTTP endpoint serving the endless Ogg/Vorbis body.
func (s Station) StreamURL() string {
	return descriptors[s].streamURL
}

// WSURL is the metadata gateway endpoint.
func (s Station) WSURL() string {
	return descriptors[s].wsURL
}

func (s Station) Name() string {
	return descriptors[s].name
}

func (s Station) DisplayName() string {
	return descriptors[s].displayName
}

func (s Station) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Station(%d)", int(s))
	}
	return s.Name()
}

// Valid reports whether s is a declared station.
func (s Station) Valid() bool {
	return s >= 0 && s < stationCount
}

// All returns every station in declaration order.
func All() []Station {
	out := make([]Station, 0, stationCount)
	for s := Station(0); s < stationCount; s++ {
		out = append(out, s)
	}
	return out
}

// Parse looks a station up by its machine name.
func Parse(name string) (Station, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for s := Station(0); s < stationCount; s++ {
		if descriptors[s].name == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStation, name)
}
