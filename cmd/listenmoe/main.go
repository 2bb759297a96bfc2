// ABOUTME: Entry point for the listen.moe ingest CLI
// ABOUTME: Wires config, logging, and subcommands under a cobra root
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/application/config"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/gateway"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/logging"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/source"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "listenmoe",
	Short: "Ingest listen.moe radio streams and now-playing metadata",
	Long: `listenmoe opens the listen.moe J-POP and K-POP streams as raw,
non-seekable byte sources and follows the now-playing gateway.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	opts := logging.Options{Level: cfg.Logging.Level, JSON: cfg.Logging.JSON}
	if verbose {
		opts.Level = "debug"
	}
	logger, err = logging.New(opts)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	return nil
}

func userAgent() string {
	if cfg.HTTP.UserAgent != "" {
		return cfg.HTTP.UserAgent
	}
	return source.DefaultUserAgent()
}

func newStreamSource() *source.HTTPSource {
	return source.NewHTTP(source.HTTPConfig{
		UserAgent:             userAgent(),
		ConnectTimeout:        cfg.HTTP.ConnectTimeout(),
		ResponseHeaderTimeout: cfg.HTTP.ResponseHeaderTimeout(),
		Headers:               cfg.HTTP.RequestHeaders,
	}, logger)
}

func newGateway() *gateway.Client {
	return gateway.New(gateway.Config{
		ReconnectDelay:   cfg.Gateway.ReconnectDelay(),
		HandshakeTimeout: cfg.Gateway.HandshakeTimeout(),
		UserAgent:        userAgent(),
	}, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
