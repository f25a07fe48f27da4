package model

// PracticeProfile is the identity block printed at the top of every
// document. Loadable from a YAML profile file; DefaultPractice supplies
// the built-in values.
type PracticeProfile struct {
	Name         string   `yaml:"name"`
	AddressLines []string `yaml:"address_lines"`
	Phone        string   `yaml:"phone"`
	Fax          string   `yaml:"fax"`
	TaxID        string   `yaml:"tax_id"`
	License      string   `yaml:"license"`
	NPI          string   `yaml:"npi"`
}

// DefaultPractice returns the built-in practice identity used when no
// profile file is given.
func DefaultPractice() PracticeProfile {
	return PracticeProfile{
		Name: "Michelle Kwok M.D.",
		AddressLines: []string{
			"1225 Crane Street",
			"Suite 106B",
			"Menlo Park, CA 94025",
		},
		Phone:   "408 421 5826",
		Fax:     "408 520 3776",
		TaxID:   "82-4268494",
		License: "A84230",
		NPI:     "1104905959",
	}
}
