package domain

import (
	"path/filepath"
	"strings"
)

// DocumentKind is the declared type of an uploaded document.
type DocumentKind string

const (
	DocumentKindPDF  DocumentKind = "pdf"
	DocumentKindText DocumentKind = "text"
)

// KindFromFilename infers the document kind from the file name suffix.
// Only ".pdf" (any case) is treated as PDF; everything else is plain text.
func KindFromFilename(name string) DocumentKind {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return DocumentKindPDF
	}
	return DocumentKindText
}

// ParseMode records which decoding stage produced a structured result.
type ParseMode string

const (
	ParseModeStrict ParseMode = "strict"
	ParseModeSpan   ParseMode = "span"
	ParseModeRaw    ParseMode = "raw"
)

// ExportFormat is a download format for extracted key points.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// Text limits in characters (Unicode code points).
const (
	PromptTextLimit   = 20000
	RetainedTextLimit = 50000
)

// Placeholders rendered when the webhook response omits a field.
const (
	PlaceholderFinalAnswer = "_No answer returned_"
	PlaceholderEmailBody   = "_No email body returned_"
	PlaceholderStatus      = "Unknown"
)
