package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/docglot/docglot/internal/core"
	"github.com/docglot/docglot/internal/core/format"
	"github.com/docglot/docglot/internal/models"
)

type DocumentHandler struct {
	extractor core.DocumentExtractor
	detect    func(text string) string
	maxUpload int64
	log       zerolog.Logger
}

func NewDocumentHandler(extractor core.DocumentExtractor, detect func(text string) string, maxUpload int64, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{extractor: extractor, detect: detect, maxUpload: maxUpload, log: log}
}

// extractProgress is the SSE payload emitted while a file decodes.
type extractProgress struct {
	Status          string `json:"status"`
	ProgressPercent int    `json:"progress_percent"`
}

// ExtractDocument accepts one multipart file and answers with the extracted
// document. Clients that accept text/event-stream get progress events first
// and the document as the final event.
func (h *DocumentHandler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUpload {
		http.Error(w, fmt.Sprintf("upload exceeds %d bytes", h.maxUpload), http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, fmt.Sprintf("upload exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Strip any path components a client smuggled into the filename.
	cleanFilename := filepath.Base(header.Filename)
	base, ext := format.SplitName(cleanFilename)
	if !format.CanIngest(ext) {
		http.Error(w, fmt.Sprintf("unsupported document format %q", ext), http.StatusUnsupportedMediaType)
		return
	}

	if wantsSSE(r) {
		h.extractStreaming(w, r, file, header.Size, cleanFilename, base, ext)
		return
	}

	text, err := h.extractor.Extract(r.Context(), file, header.Size, cleanFilename, nil)
	if err != nil {
		h.log.Error().Err(err).Str("filename", cleanFilename).Msg("extraction failed")
		h.writeExtractionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.buildDocument(base, ext, text, header.Size))
}

// extractStreaming runs extraction and progress forwarding as one group so a
// broken client connection also stops the decode.
func (h *DocumentHandler) extractStreaming(w http.ResponseWriter, r *http.Request, file io.Reader, size int64, filename, base, ext string) {
	sse, ok := newSSEWriter(w)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	progCh := make(chan int, 16)
	g, gctx := errgroup.WithContext(r.Context())

	var text string
	g.Go(func() error {
		defer close(progCh)
		t, err := h.extractor.Extract(gctx, file, size, filename, func(p int) {
			select {
			case progCh <- p:
			case <-gctx.Done():
			}
		})
		if err != nil {
			return err
		}
		text = t
		return nil
	})
	g.Go(func() error {
		for p := range progCh {
			if err := sse.Event("progress", extractProgress{Status: models.StatusExtracting, ProgressPercent: p}); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Str("filename", filename).Msg("extraction failed")
		_ = sse.Event("error", map[string]string{"error": err.Error()})
		return
	}
	_ = sse.Event("document", h.buildDocument(base, ext, text, size))
}

func (h *DocumentHandler) buildDocument(base, ext, text string, size int64) models.Document {
	doc := models.Document{
		ID:           uuid.NewString(),
		Name:         base,
		Content:      text,
		SourceFormat: ext,
		Size:         size,
		ExtractedAt:  time.Now().UTC(),
	}
	if h.detect != nil {
		doc.DetectedLanguage = h.detect(text)
	}
	return doc
}

func (h *DocumentHandler) writeExtractionError(w http.ResponseWriter, err error) {
	var extErr *core.ExtractionError
	if errors.As(err, &extErr) {
		if errors.Is(err, core.ErrUnsupportedFormat) {
			http.Error(w, extErr.Error(), http.StatusUnsupportedMediaType)
			return
		}
		http.Error(w, extErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
