package core

import (
	"context"
	"io"
)

// ProgressFunc receives extraction progress as a whole percentage in [0, 100].
// Calls arrive in non-decreasing order. Implementations must be cheap; the
// extractor invokes them synchronously.
type ProgressFunc func(percent int)

// DocumentExtractor turns an uploaded byte source into plain text.
type DocumentExtractor interface {
	// Extract decodes r, named filename and size bytes long, into plain text.
	// The parsing strategy is chosen from the filename extension. Progress is
	// reported through onProgress, which may be nil. A source that cannot be
	// decoded yields an *ExtractionError.
	Extract(ctx context.Context, r io.Reader, size int64, filename string, onProgress ProgressFunc) (string, error)
}
