// ABOUTME: Prometheus collectors for stream ingest and gateway activity
// ABOUTME: Every series is labelled by station name
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gauges
var (
	ActiveStreams = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "listenmoe_active_streams",
		Help: "Number of media sources currently being pumped",
	}, []string{"station"})
	GatewayConnected = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "listenmoe_gateway_connected",
		Help: "Whether the metadata gateway session is up (1) or down (0)",
	}, []string{"station"})
)

// Counters
var (
	StreamsOpenedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listenmoe_streams_opened_total",
		Help: "Total stream responses accepted with 200 OK",
	}, []string{"station"})
	BytesReadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listenmoe_stream_bytes_read_total",
		Help: "Total audio bytes read from stream bodies",
	}, []string{"station"})
	ReadErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listenmoe_stream_read_errors_total",
		Help: "Total transport errors surfaced by stream reads",
	}, []string{"station"})
	GatewayConnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listenmoe_gateway_connects_total",
		Help: "Total metadata gateway sessions established",
	}, []string{"station"})
	GatewayTrackUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listenmoe_gateway_track_updates_total",
		Help: "Total TRACK_UPDATE events received",
	}, []string{"station"})
)
