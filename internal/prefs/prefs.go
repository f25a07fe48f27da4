// Package prefs persists the two small user preference strings (email
// body template and subject) as plain UTF-8 files under the
// application-private config directory. Absence is not an error: defaults
// apply.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir       = "billdoc"
	templateFile = "emailTemplate.txt"
	subjectFile  = "emailSubject.txt"
)

// DefaultSubject is used when no subject preference has been saved.
const DefaultSubject = "Billing Statement"

// DefaultTemplate is used when no body template has been saved.
const DefaultTemplate = `Dear {name},

Our records show a balance of {balance} for {service} on {date}.
Please contact the office with any questions about your statement.

Thank you.
`

// userConfigDir is swappable in tests.
var userConfigDir = os.UserConfigDir

// Dir returns the preference directory, creating nothing.
func Dir() (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// LoadTemplate returns the saved body template, or DefaultTemplate when
// none has been saved.
func LoadTemplate() (string, error) {
	return load(templateFile, DefaultTemplate)
}

// SaveTemplate persists the body template.
func SaveTemplate(template string) error {
	return save(templateFile, template)
}

// LoadSubject returns the saved subject, or DefaultSubject.
func LoadSubject() (string, error) {
	return load(subjectFile, DefaultSubject)
}

// SaveSubject persists the subject.
func SaveSubject(subject string) error {
	return save(subjectFile, subject)
}

func load(name, fallback string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read preference %s: %w", name, err)
	}
	return string(data), nil
}

func save(name, value string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create preference dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(value), 0644); err != nil {
		return fmt.Errorf("write preference %s: %w", name, err)
	}
	return nil
}
