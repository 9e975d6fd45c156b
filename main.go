package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"twentyfour/config"
)

var (
	logger     = zap.NewNop()
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "twentyfour",
	Short: "24-hour clock face with a day and night disc",
	Long: `twentyfour draws a 24-hour analog clock as SVG. Midnight is at the
bottom, noon at the top, and a disc behind the hands shows when the sun is
up, down or in twilight at the configured place.

The face is served over HTTP, written to files or posted to Telegram.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogger(); err != nil {
			return err
		}
		// Load the configuration
		return config.LoadConfig(configPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (environment variables take precedence)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(sunCmd)
	rootCmd.AddCommand(botCmd)
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger = l
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
