package extraction_engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/docglot/docglot/internal/core"
)

// pagedDocument is the slice of go-fitz the engine needs. Tests swap openPaged
// for a fake so the binary fixtures stay out of the repo.
type pagedDocument interface {
	NumPage() int
	Text(page int) (string, error)
	Close() error
}

var openPaged = func(data []byte) (pagedDocument, error) {
	return fitz.NewFromMemory(data)
}

// extractPaged walks the document page by page. Progress is reported once per
// page as round(pagesDone/totalPages*100), so the final page always lands on
// exactly 100. Pages are joined with a blank line.
func (e *Engine) extractPaged(ctx context.Context, data []byte, onProgress core.ProgressFunc) (string, error) {
	doc, err := openPaged(data)
	if err != nil {
		return "", &core.ExtractionError{Format: ".pdf", Err: fmt.Errorf("open document: %w", err)}
	}
	defer doc.Close()

	total := doc.NumPage()
	var sb strings.Builder
	for i := 0; i < total; i++ {
		select {
		case <-ctx.Done():
			return "", &core.ExtractionError{Format: ".pdf", Err: ctx.Err()}
		default:
		}
		raw, err := doc.Text(i)
		if err != nil {
			return "", &core.ExtractionError{Format: ".pdf", Err: fmt.Errorf("page %d: %w", i+1, err)}
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(joinPageText(raw))
		onProgress(int(math.Round(float64(i+1) / float64(total) * 100)))
	}
	return sb.String(), nil
}

// joinPageText collapses the text runs of one page into a single line. Paged
// extraction yields fragments in layout order; they are joined with single
// spaces and empty runs are dropped, so intra-page line breaks never leak
// into the extracted text.
func joinPageText(raw string) string {
	lines := strings.Split(raw, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
