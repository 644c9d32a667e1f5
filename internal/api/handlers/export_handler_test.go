package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docglot/docglot/internal/core/exporter"
)

func newExportHandler() *ExportHandler {
	return NewExportHandler(exporter.New(), zerolog.Nop())
}

func postExport(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := newExportHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/exports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ExportDocument(rec, req)
	return rec
}

func TestExportDocumentPlainDownload(t *testing.T) {
	rec := postExport(t, `{"base_name":"report","extension":".txt","content":"Line1\n\nLine2"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="report.txt"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, "﻿"))
	assert.Equal(t, "Line1\n\nLine2", strings.TrimPrefix(body, "﻿"))
}

func TestExportDocumentWordDownload(t *testing.T) {
	rec := postExport(t, `{"base_name":"mixed","extension":".doc","content":"hello\nسلام"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msword", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="mixed.doc"`)
	assert.Contains(t, rec.Body.String(), `dir="rtl"`)
}

func TestExportDocumentPrintIsInline(t *testing.T) {
	rec := postExport(t, `{"base_name":"essay","extension":".pdf","content":"body text"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "inline", rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<!DOCTYPE html>"))
}

func TestExportDocumentBadBody(t *testing.T) {
	rec := postExport(t, `{"base_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
