// Package fields maps unpredictable CSV header spellings onto canonical
// billing attributes through ordered alias tables.
package fields

import "github.com/gyeh/billdoc/internal/tabular"

// Canonical identifies a logical billing attribute independent of how the
// source file spells its column header.
type Canonical string

const (
	FirstName   Canonical = "first_name"
	LastName    Canonical = "last_name"
	FullName    Canonical = "full_name"
	Diagnosis   Canonical = "diagnosis"
	Location    Canonical = "location"
	ServiceCode Canonical = "service_code"
	Charge      Canonical = "charge"
	Paid        Canonical = "paid"
	Balance     Canonical = "balance"
	Date        Canonical = "date"
	Email       Canonical = "email"
)

// Aliases is the ordered header-alias table per canonical field, the de
// facto schema contract for input files. Earlier aliases win. Key matching
// is case-sensitive; both casings are enumerated where exports are known
// to vary.
//
// Charge deliberately accepts due/amount-style headers as trailing
// fallbacks: statement exports list the billed line as the balance due.
// Paid accepts only payment-style headers, so statement inputs with no
// payment column resolve a 0.00 payment.
var Aliases = map[Canonical][]string{
	FirstName:   {"First Name", "FirstName", "first_name", "First", "first"},
	LastName:    {"Last Name", "LastName", "last_name", "Last", "last"},
	FullName:    {"Patient", "patient", "Name", "name"},
	Diagnosis:   {"Dx", "DX", "dx", "Diagnosis", "diagnosis"},
	Location:    {"Location", "location"},
	ServiceCode: {"CPT", "cpt", "Service", "service", "Description", "description"},
	Charge:      {"Charge", "charge", "Amount", "amount", "Total", "total", "Due", "due", "Amount Due", "amount_due"},
	Paid:        {"Paid", "paid", "Payment", "payment", "Payments", "payments", "Amount Paid", "amount_paid"},
	Balance:     {"Balance", "balance"},
	Date:        {"Date", "date", "Date of Service", "DOS"},
	Email:       {"Email", "email", "Email Address", "email_address"},
}

// Resolve returns the value of the first alias present in the row. A key
// present with an empty value still wins and returns "". No alias present
// returns "". Absence is always representable; Resolve never errors.
func Resolve(row tabular.Row, f Canonical) string {
	for _, alias := range Aliases[f] {
		if v, ok := row[alias]; ok {
			return v
		}
	}
	return ""
}
