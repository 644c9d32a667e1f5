package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/docglot/docglot/internal/core"
	"github.com/docglot/docglot/internal/core/exporter"
	"github.com/docglot/docglot/internal/models"
)

type ExportHandler struct {
	exporter *exporter.Exporter
	log      zerolog.Logger
}

func NewExportHandler(exp *exporter.Exporter, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{exporter: exp, log: log}
}

// ExportDocument serializes content into the requested format and delivers
// it: attachments for downloads, inline HTML for the print flow. A failed
// write is logged and otherwise dropped; the client just asks again.
func (h *ExportHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	var spec models.ExportSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	art, err := h.exporter.Export(spec)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", art.MIME)
	if art.Inline {
		w.Header().Set("Content-Disposition", "inline")
	} else {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	if _, err := w.Write(art.Data); err != nil {
		h.log.Warn().Err(&core.ExportError{Filename: art.Filename, Err: err}).Msg("artifact delivery failed")
	}
}
