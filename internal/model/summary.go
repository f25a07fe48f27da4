package model

import "time"

// RenderFailure records a non-fatal page-render error for one patient.
// The text artifact for that patient still exists.
type RenderFailure struct {
	Patient string
	Err     string
}

// RunSummary captures metrics from a single processing run.
type RunSummary struct {
	RunID        string
	BillingPath  string
	RosterPath   string
	OutputDir    string
	DocumentType DocumentType

	RowsRead      int64
	PatientsBuilt int
	TextWritten   int
	PagesRendered int
	DraftsWritten int

	PatientsWithoutEmail []string
	RenderFailures       []RenderFailure

	DurationLoad   time.Duration
	DurationBuild  time.Duration
	DurationRender time.Duration
	DurationDrafts time.Duration
	DurationTotal  time.Duration
}
