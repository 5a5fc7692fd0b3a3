package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/rafscope/internal/api"
	"github.com/gyeh/rafscope/internal/chat"
	"github.com/gyeh/rafscope/internal/dataset"
	"github.com/gyeh/rafscope/internal/exitcode"
	"github.com/gyeh/rafscope/internal/logging"
	"github.com/gyeh/rafscope/internal/narrative"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics HTTP API",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cfg.ListenAddr, "listen", ":8080", "HTTP listen address")
	f.StringVar(&cfg.MembersFile, "members", "", "Serve directly from a members parquet file instead of the database")
	f.StringVar(&cfg.ClaimsFile, "claims", "", "Claims parquet file (with --members)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	loadTunables(log)

	snap := buildSnapshot(ctx, log)
	store := dataset.NewStore(snap)

	var gen narrative.Generator
	if cfg.AnthropicAPIKey != "" {
		gen = narrative.NewAnthropic(cfg.AnthropicAPIKey, cfg.NarrativeModel)
		log.Info().Msg("narrative enrichment enabled")
	} else {
		log.Info().Msg("ANTHROPIC_API_KEY not set, narrative enrichment disabled")
	}

	handler := api.NewHandler(store, chat.New(log, gen, cfg.NarrativeTimeout), log)
	e := api.NewServer(handler)

	log.Info().
		Str("listen", cfg.ListenAddr).
		Int("members", snap.MemberCount()).
		Int("claims", snap.ClaimCount()).
		Msg("serving analytics API")
	if err := e.Start(cfg.ListenAddr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(exitcode.ServeError)
	}
	return nil
}
