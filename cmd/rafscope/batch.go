package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/rafscope/internal/agent"
	"github.com/gyeh/rafscope/internal/exitcode"
	"github.com/gyeh/rafscope/internal/logging"
)

var batchTopN int

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the risk agent over the highest-risk members",
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.IntVar(&batchTopN, "top", 0, "Evaluate only the top N members by risk score (0 = all, overrides config)")
	f.StringVar(&cfg.MembersFile, "members", "", "Members parquet file (defaults to the database)")
	f.StringVar(&cfg.ClaimsFile, "claims", "", "Claims parquet file (with --members)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	loadTunables(log)

	topN := cfg.BatchTopN
	if batchTopN > 0 {
		topN = batchTopN
	}

	snap := buildSnapshot(ctx, log)
	outputs := agent.RunRiskAgentBatch(snap.Members(), snap.ClaimsIndex(), topN)

	withFindings := 0
	for _, out := range outputs {
		if len(out.Findings) > 0 {
			withFindings++
		}
	}
	log.Info().
		Int("evaluated", len(outputs)).
		Int("with_findings", withFindings).
		Msg("batch evaluation complete")

	enc, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode output failed")
		os.Exit(exitcode.AnalysisError)
	}
	fmt.Println(string(enc))
	return nil
}
