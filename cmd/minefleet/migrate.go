package main

import (
	"fmt"
	"io"

	"github.com/minefleet/minefleet/internal/db"
	"github.com/minefleet/minefleet/internal/refdata"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  "Creates or updates the schema for all fleet tables and seeds the default reference data. Safe to run multiple times.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.OutOrStdout(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "minefleet.yaml", "path to config file")
	return cmd
}

func runMigrate(out io.Writer, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Running migrations...")
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	fmt.Fprintln(out, "Seeding default reference data...")
	if err := refdata.EnsureDefaults(gdb); err != nil {
		return err
	}
	fmt.Fprintln(out, "Migration complete.")
	return nil
}
