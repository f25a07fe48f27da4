// Package email composes personalized draft messages and writes the flat
// drafts file. It never sends anything and never fabricates an address.
package email

import (
	"strings"

	"github.com/gyeh/billdoc/internal/model"
)

// Compose fills the body and subject templates for one patient by literal
// placeholder replacement: {name}, {amount}, {service}, {date}, {balance}
// in the body and {name} in the subject. {balance} falls back to the
// amount when the file carried no distinct balance column. Placeholders
// with no corresponding value pass through verbatim rather than erroring.
//
// ok is false when the patient has no resolved email; no draft is
// composed and the caller records the patient instead.
func Compose(doc *model.PatientDocument, bodyTemplate, subjectTemplate string) (model.EmailDraft, bool) {
	to := strings.TrimSpace(doc.Email)
	if to == "" {
		return model.EmailDraft{}, false
	}

	amount := doc.Charge.StringFixed(2)
	balance := doc.Balance
	if balance == "" {
		balance = amount
	}

	body := strings.NewReplacer(
		"{name}", doc.Name,
		"{amount}", amount,
		"{service}", doc.ServiceCode,
		"{date}", doc.RawDate,
		"{balance}", balance,
	).Replace(bodyTemplate)

	return model.EmailDraft{
		To:      to,
		Subject: strings.ReplaceAll(subjectTemplate, "{name}", doc.Name),
		Body:    body,
		Patient: doc.Name,
	}, true
}
