package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/billdoc/internal/config"
	"github.com/gyeh/billdoc/internal/exitcode"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "billdoc",
	Short: "Patient billing statement and superbill generator",
	Long: "Reads practice billing exports (CSV or XLSX) and produces per-patient\n" +
		"statement or superbill documents as text and PDF, with optional\n" +
		"personalized email drafts matched against an email roster.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
