// Package pipeline orchestrates one processing run: load, classify, build,
// roster matching, text artifacts, page rendering, email drafts.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/billdoc/internal/classify"
	"github.com/gyeh/billdoc/internal/config"
	emaildraft "github.com/gyeh/billdoc/internal/email"
	"github.com/gyeh/billdoc/internal/match"
	"github.com/gyeh/billdoc/internal/model"
	"github.com/gyeh/billdoc/internal/patient"
	"github.com/gyeh/billdoc/internal/progress"
	"github.com/gyeh/billdoc/internal/render"
	"github.com/gyeh/billdoc/internal/tabular"
)

// utf8BOM prefixes every text artifact so consumers detect the encoding.
const utf8BOM = "\uFEFF"

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Deps are the injected collaborators for a run. Renderer may be nil
// (text-only run); Progress may be nil (no listener); a zero Now means
// the wall clock, a fixed Now makes date-derived output deterministic.
type Deps struct {
	Log      zerolog.Logger
	Renderer render.PageRenderer
	Progress *progress.Reporter
	Now      time.Time
}

// Run executes the full pipeline. Loader-level and setup failures abort
// with a PipelineError; per-patient page-render failures are collected in
// the summary and do not fail the run; the text artifact already exists.
func Run(ctx context.Context, cfg *config.Config, deps Deps) (*model.RunSummary, error) {
	totalStart := time.Now()
	log := deps.Log

	now := deps.Now
	if now.IsZero() {
		now = time.Now()
	}

	summary := &model.RunSummary{
		RunID:       uuid.New().String(),
		BillingPath: cfg.BillingPath,
		RosterPath:  cfg.RosterPath,
		OutputDir:   cfg.OutputDir,
	}

	deps.Progress.Report(10, "Parsing CSV files...")

	// Phase 1: load the billing file. The roster is loaded later, but
	// fully, before matching starts.
	loadStart := time.Now()
	log.Info().Str("file", cfg.BillingPath).Msg("loading billing file")
	src, err := tabular.OpenAny(cfg.BillingPath, log)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	headers := src.Headers()
	rows, err := tabular.ReadAll(src)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	summary.RowsRead = int64(len(rows))
	summary.DurationLoad = time.Since(loadStart)

	switch classify.Validate(headers) {
	case classify.OutcomeEmpty:
		log.Warn().Msg("billing file is empty; nothing to produce")
	case classify.OutcomeUnknown:
		log.Warn().Msg("no recognizable billing columns; processing best-effort")
	}

	docType := classify.DocumentTypeFor(headers)
	summary.DocumentType = docType
	log.Info().Str("document_type", string(docType)).Int64("rows", summary.RowsRead).Msg("billing file classified")

	// Phase 2: build patient documents, one per row.
	buildStart := time.Now()
	docs := patient.Build(rows, docType, now)
	summary.PatientsBuilt = len(docs)
	summary.DurationBuild = time.Since(buildStart)

	// Phase 3: load the roster and resolve emails.
	if cfg.RosterPath != "" {
		rosterSrc, err := tabular.OpenAny(cfg.RosterPath, log)
		if err != nil {
			return nil, &PipelineError{Phase: "roster", Err: err}
		}
		roster, err := tabular.ReadAll(rosterSrc)
		if err != nil {
			return nil, &PipelineError{Phase: "roster", Err: err}
		}
		for i := range docs {
			if email, ok := match.Email(docs[i].Name, roster); ok {
				docs[i].Email = email
			}
		}
	}

	// Phase 4: render text bodies and write the text artifacts.
	deps.Progress.Report(30, "Generating statements...")
	renderStart := time.Now()
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return nil, &PipelineError{Phase: "output", Err: fmt.Errorf("create output dir: %w", err)}
		}
	}
	for i := range docs {
		d := &docs[i]
		d.TextContent = render.Text(d, cfg.Practice, now)
		stem := d.FileStem()
		d.TextPath = filepath.Join(cfg.OutputDir, stem+".txt")
		d.PDFPath = filepath.Join(cfg.OutputDir, stem+".pdf")
		if !cfg.DryRun {
			if err := os.WriteFile(d.TextPath, []byte(utf8BOM+d.TextContent), 0644); err != nil {
				return nil, &PipelineError{Phase: "write", Err: err}
			}
			summary.TextWritten++
		}
		deps.Progress.Report(30+(i+1)*30/len(docs), fmt.Sprintf("Generating %s for %s...", docType, d.Name))
	}

	// Phase 5: page rendering, one engine context at a time. Failures
	// are per-patient and non-fatal.
	if deps.Renderer != nil && !cfg.DryRun && !cfg.SkipPDF {
		for i := range docs {
			d := &docs[i]
			markup := render.HTMLPage(d.TextContent, d.FileStem())
			page, err := deps.Renderer.RenderPage(ctx, markup)
			if err == nil {
				err = os.WriteFile(d.PDFPath, page, 0644)
			}
			if err != nil {
				log.Warn().Err(err).Str("patient", d.Name).Msg("page render failed, text artifact kept")
				summary.RenderFailures = append(summary.RenderFailures, model.RenderFailure{
					Patient: d.Name,
					Err:     err.Error(),
				})
				continue
			}
			summary.PagesRendered++
		}
	}
	summary.DurationRender = time.Since(renderStart)

	// Phase 6: email drafts. Every patient lands in exactly one of
	// {drafted, without email}.
	if cfg.CreateDrafts {
		deps.Progress.Report(70, "Creating email drafts...")
		draftsStart := time.Now()
		var drafts []model.EmailDraft
		for i := range docs {
			d := &docs[i]
			draft, ok := emaildraft.Compose(d, cfg.EmailTemplate, cfg.EmailSubject)
			if !ok {
				summary.PatientsWithoutEmail = append(summary.PatientsWithoutEmail, d.Name)
				continue
			}
			drafts = append(drafts, draft)
			deps.Progress.Report(70+(i+1)*25/len(docs), fmt.Sprintf("Creating email draft for %s...", d.Name))
		}
		if len(drafts) > 0 && !cfg.DryRun {
			path := cfg.DraftsPath
			if path == "" {
				path = filepath.Join(cfg.OutputDir, "email_drafts.txt")
			}
			if err := emaildraft.WriteDrafts(path, drafts); err != nil {
				return nil, &PipelineError{Phase: "drafts", Err: err}
			}
		}
		summary.DraftsWritten = len(drafts)
		summary.DurationDrafts = time.Since(draftsStart)
	}

	deps.Progress.Done("Finalizing...")
	summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int("patients", summary.PatientsBuilt).
		Int("text_files", summary.TextWritten).
		Int("pages", summary.PagesRendered).
		Int("drafts", summary.DraftsWritten).
		Int("without_email", len(summary.PatientsWithoutEmail)).
		Int("render_failures", len(summary.RenderFailures)).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("run complete")

	return summary, nil
}
