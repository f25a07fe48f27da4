package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/billdoc/internal/model"
)

// Config holds all runtime configuration for a billdoc run.
type Config struct {
	BillingPath  string // billing export, CSV or XLSX (required)
	RosterPath   string // email roster, optional
	OutputDir    string // artifact directory
	DraftsPath   string // drafts file; defaults to OutputDir/email_drafts.txt
	PracticeFile string // YAML practice profile, optional
	LogFormat    string // "text" or "json"
	Verbose      bool
	CreateDrafts bool
	DryRun       bool // build and render in memory, write nothing
	SkipPDF      bool // text artifacts only, no page rendering

	// EmailTemplate and EmailSubject are resolved by the command layer
	// from flags or the persisted preferences.
	EmailTemplate string
	EmailSubject  string

	// Practice is the identity block on every document.
	Practice model.PracticeProfile
}

// LoadPractice merges a YAML practice profile over the built-in defaults.
// Keys absent from the file keep their default values.
func (c *Config) LoadPractice(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read practice profile: %w", err)
	}
	p := model.DefaultPractice()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse practice profile: %w", err)
	}
	c.Practice = p
	return nil
}

// Validate checks fields every command needs.
func (c *Config) Validate() error {
	if c.BillingPath == "" {
		return fmt.Errorf("--billing is required")
	}
	if _, err := os.Stat(c.BillingPath); err != nil {
		return fmt.Errorf("billing file not accessible: %w", err)
	}
	if c.RosterPath != "" {
		if _, err := os.Stat(c.RosterPath); err != nil {
			return fmt.Errorf("roster file not accessible: %w", err)
		}
	}
	return nil
}

// ValidateForProcess additionally requires an output directory.
func (c *Config) ValidateForProcess() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutputDir == "" && !c.DryRun {
		return fmt.Errorf("--out is required")
	}
	return nil
}
