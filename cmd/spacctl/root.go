package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/medxprts/Spacs-sub002/internal/config"
	"github.com/medxprts/Spacs-sub002/internal/database"
	"github.com/medxprts/Spacs-sub002/internal/store"
	"github.com/medxprts/Spacs-sub002/internal/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "spacctl",
	Short: "Operator tooling for the SPAC research platform",
	Long: `spacctl works against the same database and EDGAR access as the
monitor daemon. It validates stored SPAC records, refreshes market
prices, screens for redemption-arbitrage opportunities, and backfills
filing history for newly tracked SPACs.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/monitor.yaml", "path to config file")

	// CLI runs want quiet logs; warnings and errors still surface.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)
}

// openStore loads config and connects to the database.
func openStore(ctx context.Context) (*config.Config, *pgxpool.Pool, *store.Store, error) {
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, db, store.New(db, slog.Default()), nil
}
