package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/application/ingest"
	"github.com/harper/listenmoe-ingest/internal/domain/station"
)

var (
	streamOut      string
	streamMaxBytes string
	streamDuration time.Duration
)

var streamCmd = &cobra.Command{
	Use:   "stream <station>",
	Short: "Copy a station's raw audio stream to stdout or a file",
	Long: `Opens the station stream and copies the bytes verbatim. The stream is
Ogg/Opus and is never decoded. Stops at end of stream, --max-bytes,
--duration, or on SIGINT.`,
	Args: cobra.ExactArgs(1),
	RunE: runStream,
}

func init() {
	streamCmd.Flags().StringVarP(&streamOut, "output", "o", "-", "output file, - for stdout")
	streamCmd.Flags().StringVar(&streamMaxBytes, "max-bytes", "", "stop after this many bytes (e.g. 512KiB, 10MB)")
	streamCmd.Flags().DurationVar(&streamDuration, "duration", 0, "stop after this long")
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	st, err := station.Parse(args[0])
	if err != nil {
		return err
	}

	var maxBytes int64
	if streamMaxBytes != "" {
		n, err := humanize.ParseBytes(streamMaxBytes)
		if err != nil {
			return fmt.Errorf("invalid --max-bytes: %w", err)
		}
		maxBytes = int64(n)
	}

	var dst io.Writer = os.Stdout
	if streamOut != "-" {
		f, err := os.Create(streamOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		dst = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if streamDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, streamDuration)
		defer cancel()
	}

	pump := ingest.New(newStreamSource(), ingest.Options{MaxBytes: maxBytes}, logger)

	start := time.Now()
	n, err := pump.Run(ctx, st, dst)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}

	logger.Info("stream finished",
		zap.String("station", st.Name()),
		zap.String("copied", humanize.Bytes(uint64(n))),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return err
}
