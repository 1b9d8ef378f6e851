package constants

import (
	"path/filepath"
	"strings"
)

// Document formats supported by the loader.
const (
	PDF  = "PDF"
	DOCX = "DOCX"
)

// AllowedExtensions holds the file extensions accepted for audit ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"doc":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a (raw or normalized) extension to a document format.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx", "doc":
		return DOCX
	default:
		return ""
	}
}

// IsSupportedPath reports whether the path carries a supported extension.
func IsSupportedPath(path string) bool {
	_, ok := AllowedExtensions[NormalizeExt(filepath.Ext(path))]
	return ok
}
