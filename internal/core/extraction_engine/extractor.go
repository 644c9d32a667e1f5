// Package extraction_engine decodes uploaded files into plain text. Each
// ingestion category has its own strategy: plain files stream through with
// byte-based progress, paged documents report per-page progress, rich
// binaries go through a converter and report completion only.
package extraction_engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docglot/docglot/internal/core"
	"github.com/docglot/docglot/internal/core/format"
)

const readChunkSize = 32 * 1024

// Engine implements core.DocumentExtractor for every ingestable format.
type Engine struct{}

var _ core.DocumentExtractor = (*Engine)(nil)

func New() *Engine {
	return &Engine{}
}

// Extract decodes r into plain text, dispatching on the filename extension.
// Progress lands on onProgress in non-decreasing order; every successful
// extraction ends with a 100.
func (e *Engine) Extract(ctx context.Context, r io.Reader, size int64, filename string, onProgress core.ProgressFunc) (string, error) {
	if onProgress == nil {
		onProgress = func(int) {}
	}
	_, ext := format.SplitName(filepath.Base(filename))
	switch format.CategoryOf(ext) {
	case format.CategoryPlain:
		return e.extractPlain(ctx, r, size, onProgress)
	case format.CategoryPaged:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", &core.ExtractionError{Format: ext, Err: fmt.Errorf("read upload: %w", err)}
		}
		return e.extractPaged(ctx, data, onProgress)
	case format.CategoryRich:
		return e.extractRich(ctx, r, filename, ext, onProgress)
	default:
		return "", &core.ExtractionError{Format: ext, Err: core.ErrUnsupportedFormat}
	}
}

// extractPlain reads r to the end, reporting progress proportional to bytes
// consumed when the total size is known. The content is passed through
// verbatim apart from a leading BOM.
func (e *Engine) extractPlain(ctx context.Context, r io.Reader, size int64, onProgress core.ProgressFunc) (string, error) {
	var sb strings.Builder
	if size > 0 {
		sb.Grow(int(size))
	}
	buf := make([]byte, readChunkSize)
	var read int64
	for {
		select {
		case <-ctx.Done():
			return "", &core.ExtractionError{Format: ".txt", Err: ctx.Err()}
		default:
		}
		n, err := r.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
			read += int64(n)
			if size > 0 && read < size {
				onProgress(int(read * 100 / size))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &core.ExtractionError{Format: ".txt", Err: err}
		}
	}
	onProgress(100)
	return strings.TrimPrefix(sb.String(), "﻿"), nil
}
