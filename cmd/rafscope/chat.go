package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/rafscope/internal/chat"
	"github.com/gyeh/rafscope/internal/exitcode"
	"github.com/gyeh/rafscope/internal/logging"
	"github.com/gyeh/rafscope/internal/narrative"
)

var chatCmd = &cobra.Command{
	Use:   "chat \"<question>\"",
	Short: "Ask a natural-language question about the loaded population",
	Args:  cobra.ExactArgs(1),
	RunE:  runChat,
}

func init() {
	f := chatCmd.Flags()
	f.StringVar(&cfg.MembersFile, "members", "", "Members parquet file (defaults to the database)")
	f.StringVar(&cfg.ClaimsFile, "claims", "", "Claims parquet file (with --members)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	loadTunables(log)

	snap := buildSnapshot(ctx, log)

	var gen narrative.Generator
	if cfg.AnthropicAPIKey != "" {
		gen = narrative.NewAnthropic(cfg.AnthropicAPIKey, cfg.NarrativeModel)
	}
	resp := chat.New(log, gen, cfg.NarrativeTimeout).Answer(ctx, snap, args[0])

	enc, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode output failed")
		os.Exit(exitcode.AnalysisError)
	}
	fmt.Println(string(enc))
	return nil
}
