// Package extract provides text extraction from document file formats.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Page is one unit of extracted text. PageNum is set (1-based) for paginated
// formats; single-body formats yield one Page with PageNum nil.
type Page struct {
	Text    string
	PageNum *int
}

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content as pages.
// PDFs yield one page per PDF page; plain text (.txt, .md, .rst), DOCX, and
// XLSX yield a single page. Returns an error if the file cannot be read or
// its content cannot be parsed.
func (e *Extractor) Extract(path string) ([]Page, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). Unknown extensions are
// treated as plain text.
func (e *Extractor) ExtractBytes(content []byte, ext string) ([]Page, error) {
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx", ".odt", ".rtf":
		return singlePage(extractDOCX(content))
	case ".xlsx":
		return singlePage(extractExcel(content))
	default:
		// .txt, .md, .rst, and anything unknown
		return singlePage(extractPlain(content))
	}
}

func singlePage(text string, err error) ([]Page, error) {
	if err != nil {
		return nil, err
	}
	return []Page{{Text: text}}, nil
}
