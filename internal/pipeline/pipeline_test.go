package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/billdoc/internal/config"
	"github.com/gyeh/billdoc/internal/model"
	"github.com/gyeh/billdoc/internal/pipeline"
	"github.com/gyeh/billdoc/internal/progress"
)

// ---------- helpers ----------

var fixedNow = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

// writeCSV drops a CSV fixture into dir and returns its path.
func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// fakeRenderer returns fixed bytes, or an error for patients whose markup
// contains failOn.
type fakeRenderer struct {
	failOn string
	calls  int
}

func (r *fakeRenderer) RenderPage(ctx context.Context, markup string) ([]byte, error) {
	r.calls++
	if r.failOn != "" && strings.Contains(markup, r.failOn) {
		return nil, errors.New("engine crashed")
	}
	return []byte("%PDF-fake"), nil
}

func baseConfig(t *testing.T, billing string) *config.Config {
	t.Helper()
	return &config.Config{
		BillingPath:   billing,
		OutputDir:     t.TempDir(),
		EmailTemplate: "Dear {name}, you owe {balance}.",
		EmailSubject:  "Billing Statement",
		Practice:      model.DefaultPractice(),
	}
}

func run(t *testing.T, cfg *config.Config, deps pipeline.Deps) *model.RunSummary {
	t.Helper()
	if deps.Now.IsZero() {
		deps.Now = fixedNow
	}
	deps.Log = zerolog.Nop()
	summary, err := pipeline.Run(context.Background(), cfg, deps)
	if err != nil {
		t.Fatalf("pipeline.Run: %v", err)
	}
	return summary
}

// ---------- full runs ----------

func TestRun_StatementEndToEnd(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv",
		"Patient,Due,CPT,Date\nJane Doe,150,99213,2024-01-15\nJohn Smith,75,99214,2024-01-16\n")

	cfg := baseConfig(t, billing)
	r := &fakeRenderer{}
	summary := run(t, cfg, pipeline.Deps{Renderer: r})

	if summary.DocumentType != model.Statement {
		t.Errorf("DocumentType = %s, want Statement", summary.DocumentType)
	}
	if summary.RowsRead != 2 || summary.PatientsBuilt != 2 {
		t.Errorf("rows=%d patients=%d, want 2/2", summary.RowsRead, summary.PatientsBuilt)
	}
	if summary.TextWritten != 2 || summary.PagesRendered != 2 {
		t.Errorf("text=%d pages=%d, want 2/2", summary.TextWritten, summary.PagesRendered)
	}
	if r.calls != 2 {
		t.Errorf("renderer called %d times, want 2", r.calls)
	}

	textPath := filepath.Join(cfg.OutputDir, "Jane Doe Statement 01-15-24.txt")
	data, err := os.ReadFile(textPath)
	if err != nil {
		t.Fatalf("text artifact: %v", err)
	}
	if !strings.HasPrefix(string(data), "\uFEFF") {
		t.Error("text artifact missing UTF-8 BOM")
	}
	if !strings.Contains(string(data), "01-15-24    99213        $150.00     $0.00      ") {
		t.Errorf("billing line missing from artifact:\n%s", data)
	}

	pdfPath := filepath.Join(cfg.OutputDir, "John Smith Statement 01-16-24.pdf")
	if pdf, err := os.ReadFile(pdfPath); err != nil || string(pdf) != "%PDF-fake" {
		t.Errorf("page artifact = %q, %v", pdf, err)
	}
}

func TestRun_SuperBillClassification(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv",
		"Patient,Amount Paid,Due\nJane Doe,150,0\n")

	cfg := baseConfig(t, billing)
	summary := run(t, cfg, pipeline.Deps{})

	if summary.DocumentType != model.SuperBill {
		t.Errorf("DocumentType = %s, want SuperBill", summary.DocumentType)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "Jane Doe SuperBill 03-05-24.txt")); err != nil {
		t.Errorf("superbill artifact: %v", err)
	}
}

// ---------- roster and drafts ----------

func TestRun_DraftsPartition(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv",
		"Patient,Due\nJane Doe,150\nJohn Smith,75\nNo Roster,20\n")
	roster := writeCSV(t, dir, "roster.csv",
		"Patient,Email\nJane Doe,jane@example.com\nJohn Smith,john@example.com\n")

	cfg := baseConfig(t, billing)
	cfg.RosterPath = roster
	cfg.CreateDrafts = true
	summary := run(t, cfg, pipeline.Deps{})

	if summary.DraftsWritten != 2 {
		t.Errorf("DraftsWritten = %d, want 2", summary.DraftsWritten)
	}
	if len(summary.PatientsWithoutEmail) != 1 || summary.PatientsWithoutEmail[0] != "No Roster" {
		t.Errorf("PatientsWithoutEmail = %v", summary.PatientsWithoutEmail)
	}
	if summary.DraftsWritten+len(summary.PatientsWithoutEmail) != summary.PatientsBuilt {
		t.Error("every patient must land in exactly one of drafted / without email")
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "email_drafts.txt"))
	if err != nil {
		t.Fatalf("drafts file: %v", err)
	}
	for _, want := range []string{
		"To: jane@example.com",
		"Dear Jane Doe, you owe 150.00.",
		"To: john@example.com",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("drafts file missing %q", want)
		}
	}
}

func TestRun_DraftsPathOverride(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv", "Patient,Due\nJane Doe,150\n")
	roster := writeCSV(t, dir, "roster.csv", "Patient,Email\nJane Doe,jane@example.com\n")

	cfg := baseConfig(t, billing)
	cfg.RosterPath = roster
	cfg.CreateDrafts = true
	cfg.DraftsPath = filepath.Join(dir, "custom_drafts.txt")
	run(t, cfg, pipeline.Deps{})

	if _, err := os.Stat(cfg.DraftsPath); err != nil {
		t.Errorf("drafts at override path: %v", err)
	}
}

func TestRun_NoRosterNoEmails(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv", "Patient,Due\nJane Doe,150\n")

	cfg := baseConfig(t, billing)
	cfg.CreateDrafts = true
	summary := run(t, cfg, pipeline.Deps{})

	if summary.DraftsWritten != 0 {
		t.Errorf("DraftsWritten = %d, want 0", summary.DraftsWritten)
	}
	if len(summary.PatientsWithoutEmail) != 1 {
		t.Errorf("PatientsWithoutEmail = %v", summary.PatientsWithoutEmail)
	}
}

// ---------- failure handling ----------

func TestRun_RenderFailureNonFatal(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv",
		"Patient,Due\nJane Doe,150\nJohn Smith,75\n")

	cfg := baseConfig(t, billing)
	r := &fakeRenderer{failOn: "John Smith"}
	summary := run(t, cfg, pipeline.Deps{Renderer: r})

	if summary.PagesRendered != 1 {
		t.Errorf("PagesRendered = %d, want 1", summary.PagesRendered)
	}
	if len(summary.RenderFailures) != 1 || summary.RenderFailures[0].Patient != "John Smith" {
		t.Errorf("RenderFailures = %v", summary.RenderFailures)
	}
	// The failed patient's text artifact still exists.
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "John Smith Statement 03-05-24.txt")); err != nil {
		t.Errorf("text artifact for failed render: %v", err)
	}
}

func TestRun_MissingBillingAborts(t *testing.T) {
	cfg := baseConfig(t, "/nonexistent/billing.csv")
	_, err := pipeline.Run(context.Background(), cfg, pipeline.Deps{Log: zerolog.Nop(), Now: fixedNow})
	if err == nil {
		t.Fatal("expected load failure")
	}
	var pe *pipeline.PipelineError
	if !errors.As(err, &pe) || pe.Phase != "load" {
		t.Errorf("error = %v, want load-phase PipelineError", err)
	}
}

func TestRun_MissingRosterAborts(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv", "Patient,Due\nJane Doe,150\n")

	cfg := baseConfig(t, billing)
	cfg.RosterPath = "/nonexistent/roster.csv"
	_, err := pipeline.Run(context.Background(), cfg, pipeline.Deps{Log: zerolog.Nop(), Now: fixedNow})
	var pe *pipeline.PipelineError
	if !errors.As(err, &pe) || pe.Phase != "roster" {
		t.Errorf("error = %v, want roster-phase PipelineError", err)
	}
}

// ---------- modes ----------

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv", "Patient,Due\nJane Doe,150\n")

	cfg := baseConfig(t, billing)
	cfg.DryRun = true
	cfg.CreateDrafts = true
	r := &fakeRenderer{}
	summary := run(t, cfg, pipeline.Deps{Renderer: r})

	if summary.TextWritten != 0 || summary.PagesRendered != 0 {
		t.Errorf("dry run wrote artifacts: text=%d pages=%d", summary.TextWritten, summary.PagesRendered)
	}
	if r.calls != 0 {
		t.Errorf("renderer called %d times in dry run", r.calls)
	}
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir not empty after dry run: %v", entries)
	}
}

func TestRun_SkipPDF(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv", "Patient,Due\nJane Doe,150\n")

	cfg := baseConfig(t, billing)
	cfg.SkipPDF = true
	r := &fakeRenderer{}
	summary := run(t, cfg, pipeline.Deps{Renderer: r})

	if summary.TextWritten != 1 {
		t.Errorf("TextWritten = %d, want 1", summary.TextWritten)
	}
	if r.calls != 0 {
		t.Errorf("renderer called %d times with --no-pdf", r.calls)
	}
}

// ---------- progress ----------

func TestRun_ProgressTerminal(t *testing.T) {
	dir := t.TempDir()
	billing := writeCSV(t, dir, "billing.csv", "Patient,Due\nJane Doe,150\n")

	var events []progress.Event
	reporter := progress.New(func(e progress.Event) { events = append(events, e) }, time.Nanosecond)

	cfg := baseConfig(t, billing)
	run(t, cfg, pipeline.Deps{Progress: reporter})

	if len(events) == 0 {
		t.Fatal("no progress events delivered")
	}
	last := events[len(events)-1]
	if last.Percentage != 100 {
		t.Errorf("terminal event = %+v, want 100%%", last)
	}
}
