package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minefleet/minefleet/internal/api"
	"github.com/minefleet/minefleet/internal/config"
	"github.com/minefleet/minefleet/internal/db"
	"github.com/minefleet/minefleet/internal/notify"
	"github.com/minefleet/minefleet/internal/refdata"
	"github.com/minefleet/minefleet/internal/telemetry"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the fleet API server",
		Long:  "Opens the database, runs migrations, seeds default reference data, and serves the JSON API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "minefleet.yaml", "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override the configured HTTP port")
	return cmd
}

// loadConfig reads the config file, falling back to built-in defaults
// when the default path does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) && path == "minefleet.yaml" {
		return config.Parse(nil)
	}
	return cfg, err
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.HTTP.Port
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("serve: build logger: %w", err)
	}
	defer log.Sync()

	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	if err := refdata.EnsureDefaults(gdb); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Telemetry.RetentionDays > 0 {
		sweeper := startRetentionSweeper(gdb, log, cfg.Telemetry.RetentionDays)
		defer sweeper.Stop()
	}

	var notifier *notify.Slack
	if cfg.Alerts.SlackWebhookURL != "" {
		notifier = notify.NewSlack(cfg.Alerts.SlackWebhookURL, cfg.Alerts.Channel)
		log.Info("slack alerts enabled", zap.String("channel", cfg.Alerts.Channel))
	}

	return api.Start(ctx, api.Options{
		DB:             gdb,
		Port:           port,
		Log:            log,
		TelemetryLimit: cfg.Telemetry.QueryLimit,
		Notifier:       notifier,
	})
}

// startRetentionSweeper deletes telemetry older than the retention
// window once a day.
func startRetentionSweeper(gdb *gorm.DB, log *zap.Logger, retentionDays int) *cron.Cron {
	c := cron.New()
	c.AddFunc("@daily", func() {
		cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
		purged, err := telemetry.PurgeOlderThan(gdb, cutoff)
		if err != nil {
			log.Error("telemetry retention sweep failed", zap.Error(err))
			return
		}
		log.Info("telemetry retention sweep",
			zap.Int64("purged", purged),
			zap.Time("cutoff", cutoff))
	})
	c.Start()
	return c
}
