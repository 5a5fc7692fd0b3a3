package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/rafscope/internal/exitcode"
	"github.com/gyeh/rafscope/internal/logging"
	"github.com/gyeh/rafscope/internal/pipeline"
)

var memberCmd = &cobra.Command{
	Use:   "member <member-id>",
	Short: "Run the full suspect-analysis pipeline for one member",
	Args:  cobra.ExactArgs(1),
	RunE:  runMember,
}

func init() {
	f := memberCmd.Flags()
	f.StringVar(&cfg.MembersFile, "members", "", "Members parquet file (defaults to the database)")
	f.StringVar(&cfg.ClaimsFile, "claims", "", "Claims parquet file (with --members)")
	rootCmd.AddCommand(memberCmd)
}

func runMember(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	loadTunables(log)

	snap := buildSnapshot(ctx, log)
	m, ok := snap.Member(args[0])
	if !ok {
		log.Error().Str("member", args[0]).Msg("member not found in dataset")
		os.Exit(exitcode.ValidationError)
	}

	out, err := pipeline.New(log).Run(m, snap.Claims(m.ID))
	if err != nil {
		log.Error().Err(err).Msg("pipeline failed")
		os.Exit(exitcode.AnalysisError)
	}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode output failed")
		os.Exit(exitcode.AnalysisError)
	}
	fmt.Println(string(enc))
	return nil
}
