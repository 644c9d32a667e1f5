package models

import (
	"time"
)

// Session status values. A session only moves forward:
// idle -> translating -> success | error. Documents pass through an
// "extracting" phase before any session exists; the extract endpoint reports
// that phase with the same status vocabulary.
const (
	StatusIdle        = "idle"
	StatusExtracting  = "extracting"
	StatusTranslating = "translating"
	StatusSuccess     = "success"
	StatusError       = "error"
)

// SourceAuto asks the provider to detect the source language instead of
// being told a fixed one.
const SourceAuto = "auto"

// Document is the extracted plain-text form of one uploaded file. Typed text
// never reaches the server as a Document; the client builds the translation
// request directly.
type Document struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`          // base name, extension stripped
	Content          string    `json:"content"`       // extracted plain text
	SourceFormat     string    `json:"source_format"` // normalized extension, e.g. ".pdf"
	DetectedLanguage string    `json:"detected_language,omitempty"`
	Size             int64     `json:"size"`
	ExtractedAt      time.Time `json:"extracted_at"`
}

// TranslationRequest describes one translate action.
type TranslationRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"` // ISO 639-1 code or "auto"
	TargetLanguage string `json:"target_language"` // ISO 639-1 code
}

// SessionSnapshot is the read-only view of a translation session handed to
// the presentation layer. The session itself stays owned by the translation
// engine; callers only ever see copies.
type SessionSnapshot struct {
	ID               string    `json:"id"`
	Status           string    `json:"status"`
	SourceLanguage   string    `json:"source_language"`
	TargetLanguage   string    `json:"target_language"`
	DetectedLanguage string    `json:"detected_language,omitempty"`
	TranslatedText   string    `json:"translated_text"`
	ProgressPercent  int       `json:"progress_percent"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ExportSpec names the artifact a client wants built from final text.
// Consumed once; the exporter holds no state between calls.
type ExportSpec struct {
	BaseName  string `json:"base_name"`
	Extension string `json:"extension"`
	Content   string `json:"content"`
}

// Artifact is a built export ready for delivery. Inline artifacts (the print
// page) are rendered by the browser instead of saved as attachments.
type Artifact struct {
	Filename string
	MIME     string
	Inline   bool
	Data     []byte
}

// LanguageOption is one selectable language for the pickers.
type LanguageOption struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Native string `json:"native,omitempty"`
}
