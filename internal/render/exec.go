package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
)

// ExecRenderer shells out to an HTML-to-PDF engine installed on the host.
// Discovery order: wkhtmltopdf (honors the 20mm margin contract exactly),
// then a headless Chromium/Chrome. Discovery checks the system PATH first,
// then well-known per-OS install directories.
type ExecRenderer struct {
	bin    string
	chrome bool
	log    zerolog.Logger
}

// renderCandidates lists engine binaries in preference order.
var renderCandidates = []struct {
	name   string
	chrome bool
}{
	{"wkhtmltopdf", false},
	{"chromium", true},
	{"chromium-browser", true},
	{"google-chrome", true},
	{"chrome", true},
}

// NewExecRenderer locates a rendering engine. Returns an error when none
// is installed; callers may still run text-only.
func NewExecRenderer(log zerolog.Logger) (*ExecRenderer, error) {
	for _, c := range renderCandidates {
		if path, ok := findBinary(c.name); ok {
			log.Debug().Str("engine", path).Msg("page renderer found")
			return &ExecRenderer{bin: path, chrome: c.chrome, log: log}, nil
		}
	}
	return nil, fmt.Errorf("no HTML-to-PDF engine found (tried wkhtmltopdf, chromium, google-chrome)")
}

// RenderPage writes the markup to a scratch file, runs the engine, and
// returns the PDF bytes.
func (r *ExecRenderer) RenderPage(ctx context.Context, markup string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "billdoc-render-")
	if err != nil {
		return nil, fmt.Errorf("render scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.html")
	out := filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(in, []byte(markup), 0600); err != nil {
		return nil, fmt.Errorf("write render input: %w", err)
	}

	var cmd *exec.Cmd
	if r.chrome {
		// Headless Chrome prints with its own default margins; close
		// enough when wkhtmltopdf is absent.
		cmd = exec.CommandContext(ctx, r.bin,
			"--headless", "--disable-gpu", "--no-sandbox",
			"--print-to-pdf="+out, in)
	} else {
		cmd = exec.CommandContext(ctx, r.bin,
			"-q", "-s", "A4",
			"-T", "20mm", "-B", "20mm", "-L", "20mm", "-R", "20mm",
			in, out)
	}

	if outBytes, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", filepath.Base(r.bin), err, string(outBytes))
	}

	pdf, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	return pdf, nil
}

// findBinary searches the system PATH first, then common per-OS install
// directories.
func findBinary(name string) (string, bool) {
	if runtime.GOOS == "windows" && filepath.Ext(name) != ".exe" {
		name += ".exe"
	}
	if p, err := exec.LookPath(name); err == nil {
		return p, true
	}
	for _, dir := range defaultDirs() {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func defaultDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/Applications/Google Chrome.app/Contents/MacOS",
		}
	case "windows":
		return []string{
			`C:\Program Files\wkhtmltopdf\bin`,
			`C:\Program Files\Google\Chrome\Application`,
		}
	default:
		return []string{"/usr/local/bin", "/usr/bin", "/snap/bin"}
	}
}
