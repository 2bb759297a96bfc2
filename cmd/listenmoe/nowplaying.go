package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/harper/listenmoe-ingest/internal/domain/station"
	"github.com/harper/listenmoe-ingest/internal/domain/track"
)

var nowPlayingJSON bool

var nowPlayingCmd = &cobra.Command{
	Use:   "nowplaying <station>",
	Short: "Follow the now-playing gateway for a station",
	Args:  cobra.ExactArgs(1),
	RunE:  runNowPlaying,
}

func init() {
	nowPlayingCmd.Flags().BoolVarP(&nowPlayingJSON, "json", "j", false, "print one JSON object per track")
	rootCmd.AddCommand(nowPlayingCmd)
}

// printer writes each announced track to stdout.
type printer struct {
	json bool
	enc  *json.Encoder
}

func (p *printer) OnConnect() {
	if verbose {
		fmt.Fprintln(os.Stderr, "connected")
	}
}

func (p *printer) OnTrack(info track.Info) {
	if p.json {
		p.enc.Encode(struct {
			track.Info
			DurationSecs float64 `json:"duration_secs"`
		}{info, info.Duration.Seconds()})
		return
	}

	line := info.StreamTitle()
	if info.Duration > 0 {
		line += fmt.Sprintf(" [%s]", info.Duration.Round(time.Second))
	}
	if !info.StartTime.IsZero() {
		line += " started " + humanize.Time(info.StartTime)
	}
	fmt.Println(line)
}

func (p *printer) OnDisconnect(err error) {
	if err != nil && verbose {
		fmt.Fprintf(os.Stderr, "disconnected: %v\n", err)
	}
}

func runNowPlaying(cmd *cobra.Command, args []string) error {
	st, err := station.Parse(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := &printer{json: nowPlayingJSON, enc: json.NewEncoder(os.Stdout)}
	return newGateway().Watch(ctx, st, p)
}
