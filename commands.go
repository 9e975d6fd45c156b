package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"twentyfour/clock"
	"twentyfour/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live clock over HTTP, and run the bot when configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := config.AppConfig
		client := newGeocodingClient()
		place, err := resolvePlace(ctx, client, cfg)
		if err != nil {
			return err
		}

		ticker := newTicker()
		defer ticker.Stop()
		srv := newServer(cfg, place, ticker)

		config.Watch(func(cfg config.Config) {
			place, err := resolvePlace(ctx, client, cfg)
			if err != nil {
				logger.Error("Ignoring config change", zap.Error(err))
				return
			}
			srv.reload(cfg, place)
		})

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.ListenAndServe(ctx, cfg.ListenAddr)
		})
		if cfg.TelegramBotToken != "" {
			g.Go(func() error {
				return runBot(ctx, cfg, place)
			})
		} else {
			logger.Info("TG_BOT_TOKEN is not set, Telegram bot disabled")
		}
		return g.Wait()
	},
}

var (
	outputPath string
	watch      bool
	attributes map[string]string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the clock face as SVG",
	Example: `  twentyfour render -o clock.svg --attr datetime=2024-06-21T12:00:00+02:00
  twentyfour render --watch -o /var/www/clock.svg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := config.AppConfig
		place, err := resolvePlace(ctx, newGeocodingClient(), cfg)
		if err != nil {
			return err
		}
		face, err := newFace(cfg, place, time.Now())
		if err != nil {
			return err
		}
		if err := applyAttributes(face, place, func(name string) string { return attributes[name] }); err != nil {
			return err
		}

		write := func() error {
			if outputPath == "" || outputPath == "-" {
				return face.Render(cmd.OutOrStdout())
			}
			return writeFileAtomic(outputPath, face.Render)
		}
		if !watch {
			return write()
		}
		return renderEvery(ctx, face, write)
	},
}

// renderEvery() ticks face and writes it on every tick until ctx is done
func renderEvery(ctx context.Context, face *clock.Face, write func() error) error {
	ticker := newTicker()
	defer ticker.Stop()

	errs := make(chan error, 1)
	face.Reset(time.Now())
	job, err := ticker.Every(face.Interval(), func() {
		if face.Tick(time.Now()) {
			logger.Info("New day", zap.String("date", face.DateString()))
		}
		if err := write(); err != nil {
			select {
			case errs <- err:
			default:
			}
		}
	})
	if err != nil {
		if errors.Is(err, errStopped) {
			logger.Info("Frequency is 0, writing a single frame")
			return write()
		}
		return err
	}
	defer ticker.Cancel(job)
	logger.Info("Rendering", zap.String("output", outputPath), zap.Duration("interval", face.Interval()))

	select {
	case <-ctx.Done():
		return nil
	case err := <-errs:
		return err
	}
}

// writeFileAtomic() writes path through a temporary file in the same
// directory so readers never see half a face
func writeFileAtomic(path string, render func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var summaryDate string

var sunCmd = &cobra.Command{
	Use:   "sun",
	Short: "Print the day and night of a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig
		place, err := resolvePlace(cmd.Context(), newGeocodingClient(), cfg)
		if err != nil {
			return err
		}
		now := time.Now()
		if summaryDate != "" {
			loc := place.Location
			if loc == nil {
				loc = time.Local
			}
			if now, err = clock.ParseDatetime(summaryDate, loc); err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
		}
		face, err := newFace(cfg, place, now)
		if err != nil {
			return err
		}
		summary := summarize(face, place.Name)
		if color.NoColor {
			fmt.Fprint(cmd.OutOrStdout(), summary.Print())
		} else {
			fmt.Fprint(cmd.OutOrStdout(), summary.Colored())
		}
		return nil
	},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot and the daily clock post",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := config.AppConfig
		place, err := resolvePlace(ctx, newGeocodingClient(), cfg)
		if err != nil {
			return err
		}
		return runBot(ctx, cfg, place)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, stdout when empty")
	renderCmd.Flags().BoolVar(&watch, "watch", false, "Keep the clock running and rewrite the output on every tick")
	renderCmd.Flags().StringToStringVar(&attributes, "attr", nil, "Face attributes, e.g. --attr datetime=2024-06-21T12:00:00Z,frequency=0.1")

	sunCmd.Flags().StringVar(&summaryDate, "date", "", "Date or datetime to describe, today when empty")
}
