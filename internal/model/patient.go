package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is the kind of billing document produced by a run. It is
// decided once from the billing file's headers and is uniform across every
// PatientDocument in that run.
type DocumentType string

const (
	// Statement bills an outstanding balance.
	Statement DocumentType = "Statement"
	// SuperBill documents services with payments already applied.
	SuperBill DocumentType = "SuperBill"
)

// PatientDocument is the per-row unit of output: one billing line for one
// patient, carrying everything needed to render a statement or superbill
// and to compose an email draft. Created once per input row; mutated only
// to attach the resolved email and the rendered text.
type PatientDocument struct {
	FirstName string
	LastName  string
	// Name is the display identity. When the source row carries no name at
	// all it is the positional fallback "Patient_{n}".
	Name string

	Diagnosis   string
	Location    string
	ServiceCode string

	// Charge and Paid are always non-negative with two fractional digits.
	Charge decimal.Decimal
	Paid   decimal.Decimal
	// Balance holds the raw balance column value when the file has one;
	// empty otherwise (the email composer then falls back to Charge).
	Balance string

	// Date is the service date; RawDate is the string as it appeared in
	// the file, FormattedDate its MM-DD-YY rendering.
	Date          time.Time
	RawDate       string
	FormattedDate string

	// Email is resolved lazily against the roster; empty when unmatched.
	Email string

	DocumentType DocumentType

	// Artifacts produced during the run.
	TextContent string
	TextPath    string
	PDFPath     string
}

// FileStem is the artifact filename without extension:
// "{first} {last} {type} {MM-DD-YY}". Unnamed patients substitute their
// positional fallback name for the name pair.
func (d *PatientDocument) FileStem() string {
	name := strings.TrimSpace(d.FirstName + " " + d.LastName)
	if name == "" {
		name = d.Name
	}
	return fmt.Sprintf("%s %s %s", name, d.DocumentType, d.FormattedDate)
}

// EmailDraft is a composed draft message for one matched patient.
type EmailDraft struct {
	To      string
	Subject string
	Body    string
	Patient string
}
