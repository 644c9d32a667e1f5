package core

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat marks an upload whose extension is outside the
// ingestion allow-list.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError reports a byte source that could not be decoded into text:
// unsupported, corrupted or access-protected input. The upload is rejected
// whole; there is no partial extraction.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StreamError reports a provider failure that interrupted an in-flight
// translation stream. Fragments received before the failure remain valid;
// the stream itself is dead and is never retried.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("translation stream interrupted: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// ExportError reports a failed artifact hand-off. The artifact was built;
// only delivery to the client failed, so the same export can be asked for
// again.
type ExportError struct {
	Filename string
	Err      error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Filename, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
