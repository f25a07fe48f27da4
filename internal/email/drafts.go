package email

import (
	"fmt"
	"os"
	"strings"

	"github.com/gyeh/billdoc/internal/model"
)

// recordSeparator divides drafts in the flat output file.
var recordSeparator = strings.Repeat("=", 50)

// FormatDrafts renders the drafts file content: one To/Subject/body record
// per draft, separated by a rule line.
func FormatDrafts(drafts []model.EmailDraft) string {
	records := make([]string, 0, len(drafts))
	for _, d := range drafts {
		records = append(records, fmt.Sprintf("To: %s\nSubject: %s\n\n%s\n\n%s\n",
			d.To, d.Subject, d.Body, recordSeparator))
	}
	return strings.Join(records, "\n")
}

// WriteDrafts writes the drafts file at path.
func WriteDrafts(path string, drafts []model.EmailDraft) error {
	if err := os.WriteFile(path, []byte(FormatDrafts(drafts)), 0644); err != nil {
		return fmt.Errorf("write drafts file: %w", err)
	}
	return nil
}
