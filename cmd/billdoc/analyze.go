package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/billdoc/internal/classify"
	"github.com/gyeh/billdoc/internal/exitcode"
	"github.com/gyeh/billdoc/internal/logging"
	"github.com/gyeh/billdoc/internal/normalize"
	"github.com/gyeh/billdoc/internal/patient"
	"github.com/gyeh/billdoc/internal/tabular"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Dry-run validation and stats for a billing file (no writes)",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&cfg.BillingPath, "billing", "", "Path to billing export (required)")
	_ = analyzeCmd.MarkFlagRequired("billing")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.BillingPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}

	stat, err := os.Stat(cfg.BillingPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	src, err := tabular.OpenAny(cfg.BillingPath, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to open billing file")
		os.Exit(exitcode.InputError)
	}
	headers := src.Headers()
	rows, err := tabular.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("failed to read billing file")
		os.Exit(exitcode.InputError)
	}

	outcome := classify.Validate(headers)
	docType := classify.DocumentTypeFor(headers)
	docs := patient.Build(rows, docType, time.Now())

	codeCounts := make(map[string]int)
	unnamed := 0
	for _, d := range docs {
		if code := normalize.Code(d.ServiceCode); code != "" {
			codeCounts[code]++
		}
		if d.FirstName == "" && d.LastName == "" {
			unnamed++
		}
	}

	fmt.Println("=== billdoc analyze ===")
	fmt.Printf("File:          %s\n", cfg.BillingPath)
	fmt.Printf("SHA-256:       %s\n", sha)
	fmt.Printf("Size:          %d bytes\n", stat.Size())
	fmt.Printf("Content:       %s\n", outcome)
	fmt.Printf("Document type: %s\n", docType)
	fmt.Printf("Rows:          %d\n", len(rows))
	fmt.Printf("Headers:       %v\n", headers)
	if unnamed > 0 {
		fmt.Printf("Unnamed rows:  %d (will fall back to Patient_{n})\n", unnamed)
	}

	if len(docs) > 0 {
		n := len(docs)
		if n > 5 {
			n = 5
		}
		fmt.Println("\nSample patients:")
		for _, d := range docs[:n] {
			fmt.Printf("  %s\n", d.Name)
		}
	}

	if len(codeCounts) > 0 {
		codes := make([]string, 0, len(codeCounts))
		for c := range codeCounts {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		fmt.Println("\nService code distribution:")
		for _, c := range codes {
			fmt.Printf("  %-12s %d\n", c, codeCounts[c])
		}
	}

	if outcome != classify.OutcomeBilling {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}
