// Package exporter turns final translated text into downloadable artifacts.
// Serialization never talks to the network; a failed delivery can simply ask
// for the same artifact again.
package exporter

import (
	"strings"

	"github.com/docglot/docglot/internal/core/format"
	"github.com/docglot/docglot/internal/models"
)

// utf8BOM leads every plain-family artifact so desktop editors pick the
// right decoding for non-Latin text.
const utf8BOM = "﻿"

const defaultBaseName = "translation"

type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

// Export builds the artifact named by spec. Well-formed input never fails:
// unknown extensions serialize as plain text with the text/plain fallback
// MIME. The content is written verbatim in the plain family; only the HTML
// envelopes escape it.
func (e *Exporter) Export(spec models.ExportSpec) (models.Artifact, error) {
	base := strings.TrimSpace(spec.BaseName)
	if base == "" {
		base = defaultBaseName
	}
	ext := format.Normalize(spec.Extension)

	switch format.KindOf(ext) {
	case format.ExportRichDoc:
		return models.Artifact{
			Filename: base + ".doc",
			MIME:     "application/msword",
			Data:     buildWordDoc(spec.Content),
		}, nil
	case format.ExportPrint:
		return models.Artifact{
			Filename: base + ".html",
			MIME:     "text/html; charset=utf-8",
			Inline:   true,
			Data:     buildPrintPage(base, spec.Content),
		}, nil
	default:
		data := make([]byte, 0, len(utf8BOM)+len(spec.Content))
		data = append(data, utf8BOM...)
		data = append(data, spec.Content...)
		return models.Artifact{
			Filename: base + ext,
			MIME:     format.MIMEOf(ext),
			Data:     data,
		}, nil
	}
}
