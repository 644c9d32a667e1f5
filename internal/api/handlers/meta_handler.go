package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/docglot/docglot/internal/core/format"
	"github.com/docglot/docglot/internal/core/translation_engine"
	"github.com/docglot/docglot/internal/models"
)

// MetaHandler serves the static catalogues the client builds its pickers
// from.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type formatsResponse struct {
	Ingest           []string          `json:"ingest"`
	Export           []string          `json:"export"`
	DefaultExtension string            `json:"default_extension"`
	ExportDefaults   map[string]string `json:"export_defaults"`
}

type languagesResponse struct {
	Source []models.LanguageOption `json:"source"`
	Target []models.LanguageOption `json:"target"`
}

// GetFormats lists ingestable and exportable extensions, plus the suggested
// export extension for each source format.
func (h *MetaHandler) GetFormats(w http.ResponseWriter, r *http.Request) {
	ingest := format.IngestExtensions()
	defaults := make(map[string]string, len(ingest))
	for _, ext := range ingest {
		defaults[ext] = format.DefaultExportExtension(ext)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(formatsResponse{
		Ingest:           ingest,
		Export:           format.ExportExtensions(),
		DefaultExtension: format.DefaultExtension,
		ExportDefaults:   defaults,
	})
}

// GetLanguages lists the source and target language options.
func (h *MetaHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(languagesResponse{
		Source: translation_engine.SourceLanguageOptions(),
		Target: translation_engine.TargetLanguageOptions(),
	})
}
