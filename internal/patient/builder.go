// Package patient turns raw billing rows into patient documents. Pure
// transformation: no disk or network I/O.
package patient

import (
	"fmt"
	"strings"
	"time"

	"github.com/gyeh/billdoc/internal/fields"
	"github.com/gyeh/billdoc/internal/model"
	"github.com/gyeh/billdoc/internal/normalize"
	"github.com/gyeh/billdoc/internal/tabular"
)

// Build constructs one PatientDocument per input row, preserving row
// order. Order matters: the Patient_{n} fallback is 1-based over the
// row's position in the input sequence, not over named patients only.
// now is the processing date; it backs every date default so runs are
// deterministic under test.
func Build(rows []tabular.Row, docType model.DocumentType, now time.Time) []model.PatientDocument {
	docs := make([]model.PatientDocument, 0, len(rows))
	for i, row := range rows {
		docs = append(docs, FromRow(row, i, docType, now))
	}
	return docs
}

// FromRow builds the document for the row at 0-based position index.
func FromRow(row tabular.Row, index int, docType model.DocumentType, now time.Time) model.PatientDocument {
	first := strings.TrimSpace(fields.Resolve(row, fields.FirstName))
	last := strings.TrimSpace(fields.Resolve(row, fields.LastName))

	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		name = strings.TrimSpace(fields.Resolve(row, fields.FullName))
	}
	if name == "" {
		name = fmt.Sprintf("Patient_%d", index+1)
	}

	rawDate := strings.TrimSpace(fields.Resolve(row, fields.Date))
	date := normalize.Date(rawDate, now)
	if rawDate == "" {
		rawDate = date.Format("2006-01-02")
	}

	return model.PatientDocument{
		FirstName:     first,
		LastName:      last,
		Name:          name,
		Diagnosis:     strings.TrimSpace(fields.Resolve(row, fields.Diagnosis)),
		Location:      strings.TrimSpace(fields.Resolve(row, fields.Location)),
		ServiceCode:   strings.TrimSpace(fields.Resolve(row, fields.ServiceCode)),
		Charge:        normalize.Amount(fields.Resolve(row, fields.Charge)),
		Paid:          normalize.Amount(fields.Resolve(row, fields.Paid)),
		Balance:       strings.TrimSpace(fields.Resolve(row, fields.Balance)),
		Date:          date,
		RawDate:       rawDate,
		FormattedDate: normalize.MMDDYY(date),
		DocumentType:  docType,
	}
}
