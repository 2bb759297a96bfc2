// ABOUTME: HTTP handlers for station endpoints
// ABOUTME: Serves catalog, now-playing, history, cover, and ICY metadata routes
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/application/manager"
	"github.com/harper/listenmoe-ingest/internal/domain/station"
	"github.com/harper/listenmoe-ingest/internal/domain/track"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/icy"
)

type Handlers struct {
	mgr    *manager.Manager
	logger *zap.Logger
}

func NewHandlers(mgr *manager.Manager, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{mgr: mgr, logger: logger}
}

type stationInfo struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	StreamURL      string `json:"stream_url"`
	WSURL          string `json:"ws_url"`
	MetaURL        string `json:"meta_url"`
	GatewayHealthy bool   `json:"gateway_healthy"`
}

type metaResponse struct {
	track.Info
	DurationSecs   float64 `json:"duration_secs"`
	ICY            string  `json:"icy"`
	UpdatedAt      *string `json:"updated_at,omitempty"`
	GatewayHealthy bool    `json:"gateway_healthy"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) Stations(w http.ResponseWriter, r *http.Request) {
	feeds := h.mgr.List()
	result := make([]stationInfo, 0, len(feeds))

	for _, f := range feeds {
		st := f.Station()
		result = append(result, stationInfo{
			Name:           st.Name(),
			DisplayName:    st.DisplayName(),
			StreamURL:      st.StreamURL(),
			WSURL:          st.WSURL(),
			MetaURL:        fmt.Sprintf("/%s/meta", st.Name()),
			GatewayHealthy: f.GatewayHealthy(),
		})
	}

	writeJSON(w, http.StatusOK, result)
}

// Meta reports the current track. With lag_ms it reports the track audible
// that many milliseconds behind the live edge.
func (h *Handlers) Meta(w http.ResponseWriter, r *http.Request) {
	feed, ok := h.feed(w, r)
	if !ok {
		return
	}

	info, found, err := pickTrack(feed, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := metaResponse{GatewayHealthy: feed.GatewayHealthy()}
	if found {
		resp.Info = info
		resp.DurationSecs = info.Duration.Seconds()
		resp.ICY = info.ICY()
	}
	if t := feed.LastUpdate(); t != nil {
		s := t.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &s
	}

	writeJSON(w, http.StatusOK, resp)
}

// ICY serves the now-playing title as a raw ICY metadata block.
func (h *Handlers) ICY(w http.ResponseWriter, r *http.Request) {
	feed, ok := h.feed(w, r)
	if !ok {
		return
	}

	info, found, err := pickTrack(feed, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meta := "StreamTitle='';"
	if found {
		meta = info.ICY()
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(icy.Block(meta))
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	feed, ok := h.feed(w, r)
	if !ok {
		return
	}

	history := feed.History()
	result := make([]metaResponse, 0, len(history))
	for _, info := range history {
		result = append(result, metaResponse{
			Info:           info,
			DurationSecs:   info.Duration.Seconds(),
			ICY:            info.ICY(),
			GatewayHealthy: feed.GatewayHealthy(),
		})
	}

	writeJSON(w, http.StatusOK, result)
}

// Cover redirects to the current album artwork.
func (h *Handlers) Cover(w http.ResponseWriter, r *http.Request) {
	feed, ok := h.feed(w, r)
	if !ok {
		return
	}

	info, found := feed.Current()
	if !found || info.AlbumCover == "" {
		writeError(w, http.StatusNotFound, "no cover for current track")
		return
	}

	http.Redirect(w, r, info.AlbumCover, http.StatusFound)
}

func (h *Handlers) feed(w http.ResponseWriter, r *http.Request) (*manager.Feed, bool) {
	name := chi.URLParam(r, "station")
	if _, err := station.Parse(name); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}

	feed := h.mgr.Get(name)
	if feed == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("station %q is not enabled", name))
		return nil, false
	}
	return feed, true
}

func pickTrack(feed *manager.Feed, r *http.Request) (track.Info, bool, error) {
	raw := r.URL.Query().Get("lag_ms")
	if raw == "" {
		info, ok := feed.Current()
		return info, ok, nil
	}

	lag, err := strconv.Atoi(raw)
	if err != nil || lag < 0 {
		return track.Info{}, false, fmt.Errorf("lag_ms must be a non-negative integer, got %q", raw)
	}

	info, ok := feed.PlayingAt(time.Now().Add(-time.Duration(lag) * time.Millisecond))
	return info, ok, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
