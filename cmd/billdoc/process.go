package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/billdoc/internal/exitcode"
	"github.com/gyeh/billdoc/internal/logging"
	"github.com/gyeh/billdoc/internal/model"
	"github.com/gyeh/billdoc/internal/pipeline"
	"github.com/gyeh/billdoc/internal/prefs"
	"github.com/gyeh/billdoc/internal/progress"
	"github.com/gyeh/billdoc/internal/render"
)

var showProgress bool

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Generate statements/superbills and optional email drafts",
	RunE:  runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringVar(&cfg.BillingPath, "billing", "", "Path to billing export, CSV or XLSX (required)")
	f.StringVar(&cfg.RosterPath, "roster", "", "Path to email roster CSV/XLSX (optional)")
	f.StringVar(&cfg.OutputDir, "out", "", "Output directory for patient documents (required)")
	f.StringVar(&cfg.DraftsPath, "drafts-file", "", "Email drafts file (default: <out>/email_drafts.txt)")
	f.StringVar(&cfg.PracticeFile, "practice", "", "YAML practice profile (default: built-in)")
	f.BoolVar(&cfg.CreateDrafts, "drafts", false, "Compose email drafts for matched patients")
	f.BoolVar(&cfg.SkipPDF, "no-pdf", false, "Skip page rendering, text artifacts only")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "Build and render in memory, write nothing")
	f.BoolVar(&showProgress, "progress", false, "Print progress events to stdout")
	_ = processCmd.MarkFlagRequired("billing")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.ValidateForProcess(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	cfg.Practice = model.DefaultPractice()
	if cfg.PracticeFile != "" {
		if err := cfg.LoadPractice(cfg.PracticeFile); err != nil {
			log.Error().Err(err).Msg("loading practice profile failed")
			os.Exit(exitcode.UsageError)
		}
	}

	// Template and subject come from the persisted preferences; edit them
	// with `billdoc template`.
	if cfg.CreateDrafts {
		var err error
		if cfg.EmailTemplate, err = prefs.LoadTemplate(); err != nil {
			log.Error().Err(err).Msg("loading email template preference failed")
			os.Exit(exitcode.UsageError)
		}
		if cfg.EmailSubject, err = prefs.LoadSubject(); err != nil {
			log.Error().Err(err).Msg("loading email subject preference failed")
			os.Exit(exitcode.UsageError)
		}
	}

	deps := pipeline.Deps{Log: log}

	if !cfg.SkipPDF && !cfg.DryRun {
		renderer, err := render.NewExecRenderer(log)
		if err != nil {
			log.Warn().Err(err).Msg("no page renderer available, producing text artifacts only")
		} else {
			deps.Renderer = renderer
		}
	}

	if showProgress {
		deps.Progress = progress.New(func(e progress.Event) {
			fmt.Printf("[%3d%%] %s\n", e.Percentage, e.Label)
		}, progress.DefaultInterval)
	}

	summary, err := pipeline.Run(ctx, &cfg, deps)
	if err != nil {
		if pe, ok := err.(*pipeline.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("run failed")
			switch pe.Phase {
			case "load", "roster":
				os.Exit(exitcode.InputError)
			default:
				os.Exit(exitcode.RunError)
			}
		}
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitcode.RunError)
	}

	fmt.Printf("Run complete: %d patient(s), %d text file(s), %d page(s), %d draft(s) (%.1fs)\n",
		summary.PatientsBuilt, summary.TextWritten, summary.PagesRendered,
		summary.DraftsWritten, summary.DurationTotal.Seconds())

	if n := len(summary.PatientsWithoutEmail); n > 0 {
		fmt.Printf("Note: %d patient(s) had no email address:\n", n)
		for _, name := range summary.PatientsWithoutEmail {
			fmt.Printf("  - %s\n", name)
		}
	}
	if len(summary.RenderFailures) > 0 {
		fmt.Printf("Page rendering failed for %d patient(s); their text artifacts exist:\n",
			len(summary.RenderFailures))
		for _, rf := range summary.RenderFailures {
			fmt.Printf("  - %s: %s\n", rf.Patient, rf.Err)
		}
		os.Exit(exitcode.PartialSuccess)
	}

	return nil
}
