package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/rafscope/internal/config"
	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/db"
	"github.com/gyeh/rafscope/internal/exitcode"
	"github.com/gyeh/rafscope/internal/model"
)

var (
	cfg     config.Config
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "rafscope",
	Short: "Risk-adjustment suspect analytics over member/claim datasets",
	Long:  "Loads member and claim datasets, runs the RAF suspect-condition pipeline, and serves population analytics over HTTP.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfgFile, "config", "", "Path to YAML tunables file")
}

// loadTunables merges the optional YAML file into cfg. Exits on a broken
// file rather than running with half-applied tunables.
func loadTunables(log zerolog.Logger) {
	cfg.FromEnv()
	if cfgFile == "" {
		return
	}
	if err := cfg.LoadFromFile(cfgFile); err != nil {
		log.Error().Err(err).Msg("config file invalid")
		os.Exit(exitcode.UsageError)
	}
}

// buildSnapshot constructs the analysis snapshot from parquet files when
// --members is set, otherwise from the latest Postgres batch.
func buildSnapshot(ctx context.Context, log zerolog.Logger) *dataset.Snapshot {
	if cfg.MembersFile != "" {
		if err := cfg.ValidateFiles(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
		members, err := dataset.ReadMembers(cfg.MembersFile)
		if err != nil {
			log.Error().Err(err).Msg("read members failed")
			os.Exit(exitcode.LoadError)
		}
		var claims []model.Claim
		if cfg.ClaimsFile != "" {
			claims, err = dataset.ReadClaims(cfg.ClaimsFile)
			if err != nil {
				log.Error().Err(err).Msg("read claims failed")
				os.Exit(exitcode.LoadError)
			}
		}
		return dataset.NewSnapshot(members, claims, log)
	}

	if err := cfg.ValidateDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	batchID, err := dataset.LatestBatchID(ctx, pool)
	if err != nil {
		log.Error().Err(err).Msg("no loaded batch found; run `rafscope load` first")
		os.Exit(exitcode.LoadError)
	}
	members, claims, err := dataset.LoadFromPostgres(ctx, pool, batchID)
	if err != nil {
		log.Error().Err(err).Msg("dataset read failed")
		os.Exit(exitcode.LoadError)
	}
	log.Info().Str("batch_id", batchID.String()).Msg("dataset loaded from database")
	return dataset.NewSnapshot(members, claims, log)
}
