package extraction_engine

import (
	"context"
	"fmt"
	"io"

	"code.sajari.com/docconv"

	"github.com/docglot/docglot/internal/core"
)

// convertRich is swapped in tests; docconv shells out to external converters
// for some formats and that does not belong in a unit test.
var convertRich = func(r io.Reader, mimeType string) (string, error) {
	res, err := docconv.Convert(r, mimeType, false)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}

// extractRich converts a binary office document through docconv. These
// converters expose no intermediate progress, so the only report is the
// final 100.
func (e *Engine) extractRich(ctx context.Context, r io.Reader, filename, ext string, onProgress core.ProgressFunc) (string, error) {
	text, err := convertRich(r, docconv.MimeTypeByExtension(filename))
	if err != nil {
		return "", &core.ExtractionError{Format: ext, Err: fmt.Errorf("convert: %w", err)}
	}
	if err := ctx.Err(); err != nil {
		return "", &core.ExtractionError{Format: ext, Err: err}
	}
	onProgress(100)
	return text, nil
}
