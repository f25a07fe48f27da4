package prefs

import (
	"strings"
	"testing"
)

// useTempConfigDir redirects the preference directory for one test.
func useTempConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	orig := userConfigDir
	userConfigDir = func() (string, error) { return dir, nil }
	t.Cleanup(func() { userConfigDir = orig })
}

func TestLoadTemplate_Default(t *testing.T) {
	useTempConfigDir(t)
	got, err := LoadTemplate()
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if got != DefaultTemplate {
		t.Errorf("template = %q, want default", got)
	}
	if !strings.Contains(got, "{name}") {
		t.Error("default template should carry the {name} placeholder")
	}
}

func TestLoadSubject_Default(t *testing.T) {
	useTempConfigDir(t)
	got, err := LoadSubject()
	if err != nil {
		t.Fatalf("LoadSubject: %v", err)
	}
	if got != DefaultSubject {
		t.Errorf("subject = %q, want %q", got, DefaultSubject)
	}
}

func TestTemplate_RoundTrip(t *testing.T) {
	useTempConfigDir(t)
	want := "Dear {name}, please remit {balance}."
	if err := SaveTemplate(want); err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}
	got, err := LoadTemplate()
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if got != want {
		t.Errorf("template = %q, want %q", got, want)
	}
}

func TestSubject_RoundTrip(t *testing.T) {
	useTempConfigDir(t)
	if err := SaveSubject("January Statement"); err != nil {
		t.Fatalf("SaveSubject: %v", err)
	}
	got, err := LoadSubject()
	if err != nil {
		t.Fatalf("LoadSubject: %v", err)
	}
	if got != "January Statement" {
		t.Errorf("subject = %q", got)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	useTempConfigDir(t)
	// Dir does not exist until the first save.
	if err := SaveSubject("s"); err != nil {
		t.Fatalf("SaveSubject on fresh dir: %v", err)
	}
}
