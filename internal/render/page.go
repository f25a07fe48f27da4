package render

import "context"

// PageRenderer turns HTML markup into a paginated document artifact (PDF
// bytes). The real implementation drives an external rendering engine and
// is slow; the pipeline opens one rendering context at a time. A failure
// is per-patient and non-fatal.
type PageRenderer interface {
	RenderPage(ctx context.Context, markup string) ([]byte, error)
}
