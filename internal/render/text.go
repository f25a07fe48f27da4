// Package render produces the document artifacts for a patient: the
// canonical fixed-width text body and, through an injected page renderer,
// its paginated form.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gyeh/billdoc/internal/model"
	"github.com/gyeh/billdoc/internal/normalize"
)

// Billing line layout: two 12-wide text columns, one space, then the
// charge column 12 wide and the payment column 11. Monetary cells are
// "$" plus the two-decimal amount, no locale formatting.
const lineFormat = "%-12s%-12s %-12s%-11s\n"

const ruleWidth = 60

// Text renders the fixed-width document body for one patient: practice
// identity block, patient lines, column header, one billing line. Pure and
// deterministic for a fixed now.
func Text(doc *model.PatientDocument, practice model.PracticeProfile, now time.Time) string {
	var b strings.Builder

	b.WriteString(practice.Name + "\n")
	for _, line := range practice.AddressLines {
		b.WriteString(line + "\n")
	}
	b.WriteString("Phone " + practice.Phone + "\n")
	b.WriteString("Fax " + practice.Fax + "\n\n")
	b.WriteString("Tax ID  " + practice.TaxID + "\n")
	b.WriteString("License " + practice.License + "\n")
	b.WriteString("NPI " + practice.NPI + "\n\n")

	b.WriteString("Patient: " + doc.Name + "\n")
	b.WriteString("Diagnosis: " + doc.Diagnosis + "\n")
	b.WriteString("Location: " + doc.Location + "\n")
	b.WriteString("Date: " + now.Format("1/2/2006") + "\n\n")

	fmt.Fprintf(&b, lineFormat, "Date", "CPT", "Charge", paymentLabel(doc.DocumentType))
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	fmt.Fprintf(&b, lineFormat,
		doc.FormattedDate,
		doc.ServiceCode,
		normalize.Money(doc.Charge),
		normalize.Money(doc.Paid),
	)

	return b.String()
}

// paymentLabel names the last column: statements show what is owed,
// superbills what was paid.
func paymentLabel(t model.DocumentType) string {
	if t == model.SuperBill {
		return "Paid"
	}
	return "Due"
}
