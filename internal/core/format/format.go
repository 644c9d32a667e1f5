// Package format owns the closed sets of file formats the service understands:
// which extensions can be ingested, which can be exported, how each maps to a
// MIME type and which serialization strategy builds it.
package format

import (
	"sort"
	"strings"
)

// DefaultExtension is assumed whenever a name carries no extension and is the
// fallback suggestion for sources that cannot round-trip (e.g. .docx in,
// .txt out).
const DefaultExtension = ".txt"

// Category selects the ingestion strategy for an extension.
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryPlain is read as a byte stream and decoded as text.
	CategoryPlain
	// CategoryPaged is parsed page by page with per-page progress.
	CategoryPaged
	// CategoryRich needs a binary converter to reach the text layer.
	CategoryRich
)

// ExportKind selects the serialization strategy for an export. The set is
// closed; adding a format means adding a case everywhere a Kind is switched
// on.
type ExportKind int

const (
	// ExportPlain writes the content verbatim behind a UTF-8 BOM.
	ExportPlain ExportKind = iota
	// ExportRichDoc wraps the content in a Word-compatible HTML envelope.
	ExportRichDoc
	// ExportPrint renders a standalone HTML page for the host print dialog.
	ExportPrint
)

// plainMIME is the exhaustive plain-family table. Anything absent falls back
// to text/plain.
var plainMIME = map[string]string{
	".txt":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".xml":      "application/xml",
	".json":     "application/json",
	".csv":      "text/csv",
	".tsv":      "text/tab-separated-values",
	".srt":      "application/x-subrip",
	".vtt":      "text/vtt",
}

var richIngest = map[string]bool{
	".docx": true,
	".rtf":  true,
	".odt":  true,
}

// SplitName splits a filename into base and normalized extension. The base is
// everything before the last dot, so "report.v2.json" keeps its inner dots.
// A name with no dot keeps its whole base and gets DefaultExtension.
func SplitName(filename string) (base, ext string) {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return filename, DefaultExtension
	}
	return filename[:i], Normalize(filename[i:])
}

// Normalize lowercases ext and guarantees a leading dot. Empty input maps to
// DefaultExtension.
func Normalize(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// CategoryOf maps a normalized extension onto its ingestion strategy.
func CategoryOf(ext string) Category {
	ext = Normalize(ext)
	switch {
	case ext == ".pdf":
		return CategoryPaged
	case richIngest[ext]:
		return CategoryRich
	case plainMIME[ext] != "":
		return CategoryPlain
	default:
		return CategoryUnknown
	}
}

// CanIngest reports whether files with this extension are accepted for
// extraction.
func CanIngest(ext string) bool {
	return CategoryOf(ext) != CategoryUnknown
}

// CanExport reports whether this extension is a valid export target.
func CanExport(ext string) bool {
	ext = Normalize(ext)
	if ext == ".doc" || ext == ".pdf" {
		return true
	}
	return plainMIME[ext] != ""
}

// KindOf maps a normalized extension onto its serialization strategy. Unknown
// extensions serialize as plain text so an odd request still produces a
// usable artifact.
func KindOf(ext string) ExportKind {
	switch Normalize(ext) {
	case ".doc":
		return ExportRichDoc
	case ".pdf":
		return ExportPrint
	default:
		return ExportPlain
	}
}

// MIMEOf returns the container MIME for a plain-family extension, falling
// back to text/plain for anything outside the table.
func MIMEOf(ext string) string {
	if m, ok := plainMIME[Normalize(ext)]; ok {
		return m
	}
	return "text/plain"
}

// DefaultExportExtension suggests the export extension for a given source
// extension: same-format round-trip when the source is exportable, otherwise
// DefaultExtension.
func DefaultExportExtension(sourceExt string) string {
	sourceExt = Normalize(sourceExt)
	if CanExport(sourceExt) {
		return sourceExt
	}
	return DefaultExtension
}

// IngestExtensions lists every accepted upload extension, sorted.
func IngestExtensions() []string {
	exts := make([]string, 0, len(plainMIME)+len(richIngest)+1)
	for ext := range plainMIME {
		exts = append(exts, ext)
	}
	for ext := range richIngest {
		exts = append(exts, ext)
	}
	exts = append(exts, ".pdf")
	sort.Strings(exts)
	return exts
}

// ExportExtensions lists every valid export target, sorted.
func ExportExtensions() []string {
	exts := make([]string, 0, len(plainMIME)+2)
	for ext := range plainMIME {
		exts = append(exts, ext)
	}
	exts = append(exts, ".doc", ".pdf")
	sort.Strings(exts)
	return exts
}
