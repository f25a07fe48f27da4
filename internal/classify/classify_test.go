package classify

import (
	"testing"

	"github.com/gyeh/billdoc/internal/model"
)

func TestDocumentTypeFor(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    model.DocumentType
	}{
		{"paid header", []string{"Patient", "Amount Paid", "Date"}, model.SuperBill},
		{"due header", []string{"Patient", "Due", "Date"}, model.Statement},
		{"paid beats due", []string{"Due", "Paid"}, model.SuperBill},
		{"case insensitive", []string{"PAID"}, model.SuperBill},
		{"neither defaults to statement", []string{"Patient", "Charge"}, model.Statement},
		{"empty", nil, model.Statement},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DocumentTypeFor(c.headers); got != c.want {
				t.Errorf("DocumentTypeFor(%v) = %s, want %s", c.headers, got, c.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    Outcome
	}{
		{"billing columns", []string{"First Name", "Amount", "Date"}, OutcomeBilling},
		{"single marker", []string{"total"}, OutcomeBilling},
		{"no headers", nil, OutcomeEmpty},
		{"unrelated columns", []string{"Widget", "SKU"}, OutcomeUnknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Validate(c.headers); got != c.want {
				t.Errorf("Validate(%v) = %s, want %s", c.headers, got, c.want)
			}
		})
	}
}
