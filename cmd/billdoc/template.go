package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/billdoc/internal/exitcode"
	"github.com/gyeh/billdoc/internal/logging"
	"github.com/gyeh/billdoc/internal/prefs"
)

var (
	templateBodyFile string
	templateSubject  string
	templateReset    bool
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Show or update the persisted email draft template",
	Long: `Without flags, prints the current email subject and body template.
Use --body-file or --subject to update them; --reset restores defaults.
Placeholders {name}, {amount}, {service}, {date} and {balance} are filled
per patient when drafts are composed.`,
	RunE: runTemplate,
}

func init() {
	templateCmd.Flags().StringVar(&templateBodyFile, "body-file", "", "Read new body template from this file")
	templateCmd.Flags().StringVar(&templateSubject, "subject", "", "Set the draft subject line")
	templateCmd.Flags().BoolVar(&templateReset, "reset", false, "Restore the default subject and body template")
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)

	if templateReset {
		if err := prefs.SaveTemplate(prefs.DefaultTemplate); err != nil {
			log.Error().Err(err).Msg("failed to reset body template")
			os.Exit(exitcode.RunError)
		}
		if err := prefs.SaveSubject(prefs.DefaultSubject); err != nil {
			log.Error().Err(err).Msg("failed to reset subject")
			os.Exit(exitcode.RunError)
		}
		fmt.Println("Template and subject reset to defaults.")
		return nil
	}

	changed := false
	if templateBodyFile != "" {
		body, err := os.ReadFile(templateBodyFile)
		if err != nil {
			log.Error().Err(err).Msg("failed to read body template file")
			os.Exit(exitcode.InputError)
		}
		if err := prefs.SaveTemplate(string(body)); err != nil {
			log.Error().Err(err).Msg("failed to save body template")
			os.Exit(exitcode.RunError)
		}
		changed = true
	}
	if templateSubject != "" {
		if err := prefs.SaveSubject(templateSubject); err != nil {
			log.Error().Err(err).Msg("failed to save subject")
			os.Exit(exitcode.RunError)
		}
		changed = true
	}
	if changed {
		fmt.Println("Template updated.")
		return nil
	}

	subject, err := prefs.LoadSubject()
	if err != nil {
		log.Error().Err(err).Msg("failed to load subject")
		os.Exit(exitcode.RunError)
	}
	body, err := prefs.LoadTemplate()
	if err != nil {
		log.Error().Err(err).Msg("failed to load body template")
		os.Exit(exitcode.RunError)
	}

	fmt.Printf("Subject: %s\n\n", subject)
	fmt.Println(strings.TrimRight(body, "\n"))
	return nil
}
