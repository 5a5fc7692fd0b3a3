package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/rafscope/internal/exitcode"
	"github.com/gyeh/rafscope/internal/logging"
	"github.com/gyeh/rafscope/internal/model"
	"github.com/gyeh/rafscope/internal/simulate"
)

var simReq model.SimulationRequest

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a what-if population simulation",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.Float64Var(&simReq.RiskThreshold, "risk-threshold", 0.7, "Risk score at or above which a member counts as high risk")
	f.Float64Var(&simReq.BronzePct, "bronze-pct", 0, "Bronze share of the hypothetical plan mix")
	f.Float64Var(&simReq.SilverPct, "silver-pct", 0, "Silver share of the hypothetical plan mix")
	f.Float64Var(&simReq.GoldPct, "gold-pct", 0, "Gold share of the hypothetical plan mix")
	f.Float64Var(&simReq.CloseSuspectPct, "close-suspect-pct", 0, "Share of suspect conditions assumed closed (0-100)")
	f.Float64Var(&simReq.CodingImprovementPct, "coding-improvement-pct", 0, "Coding improvement lever (0-50)")
	f.StringVar(&cfg.MembersFile, "members", "", "Members parquet file (defaults to the database)")
	f.StringVar(&cfg.ClaimsFile, "claims", "", "Claims parquet file (with --members)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()
	loadTunables(log)

	snap := buildSnapshot(ctx, log)
	result := simulate.Run(snap, simReq, log)

	enc, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode output failed")
		os.Exit(exitcode.AnalysisError)
	}
	fmt.Println(string(enc))
	return nil
}
