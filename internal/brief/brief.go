// Package brief loads product briefs: concept notes that seed the
// product under research. A brief can be a plain text or markdown
// file, a PDF one-pager, or a web page.
package brief

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/zero360/researchlab/internal/product"
)

// Kind classifies a brief source.
type Kind string

const (
	KindURL  Kind = "url"
	KindPDF  Kind = "pdf"
	KindFile Kind = "file"

	// maxSourceSize bounds brief files. Briefs are one-pagers; anything
	// bigger is almost certainly the wrong file.
	maxSourceSize = 10 * 1024 * 1024

	// maxBodyRunes caps the body because it flows verbatim into every
	// interview prompt.
	maxBodyRunes = 4000
)

// Brief is the loaded content of a product brief.
type Brief struct {
	Title     string
	Body      string
	Source    string
	WordCount int
}

// Product derives a product record from the brief: the title becomes
// the name, the body the description. Callers overlay their own name
// or field overrides on top.
func (b *Brief) Product() product.Product {
	return product.Product{
		Name:        b.Title,
		Description: b.Body,
	}
}

// Loader reads one kind of brief source.
type Loader interface {
	Load(ctx context.Context, source string) (*Brief, error)
}

// Detect classifies a source string by shape: http(s) URLs, .pdf
// paths, and everything else as a text file.
func Detect(source string) Kind {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return KindURL
	}
	if strings.HasSuffix(strings.ToLower(source), ".pdf") {
		return KindPDF
	}
	return KindFile
}

// NewLoader returns the loader matching the source's kind.
func NewLoader(source string) Loader {
	switch Detect(source) {
	case KindURL:
		return &URLLoader{}
	case KindPDF:
		return &PDFLoader{}
	default:
		return &FileLoader{}
	}
}

// Load reads a brief from a file path or URL.
func Load(ctx context.Context, source string) (*Brief, error) {
	return NewLoader(source).Load(ctx, source)
}

// newBrief assembles a Brief from extracted text, deriving the title
// when the source had none and capping the body.
func newBrief(text, title, source string) *Brief {
	text = strings.TrimSpace(text)
	if title == "" {
		title = titleFromText(text)
	}
	return &Brief{
		Title:     title,
		Body:      capBody(text),
		Source:    source,
		WordCount: len(strings.Fields(text)),
	}
}

// titleFromText takes the first non-empty line as the title, stripping
// a markdown heading marker. Briefs usually open with the product name.
func titleFromText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > 80 {
			line = string([]rune(line)[:80]) + "..."
		}
		return line
	}
	return "Unbenanntes Produkt"
}

func capBody(text string) string {
	if utf8.RuneCountInString(text) <= maxBodyRunes {
		return text
	}
	return string([]rune(text)[:maxBodyRunes]) + "..."
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a brief", path)
	}
	if info.Size() > maxSourceSize {
		return fmt.Errorf("%s is too large for a product brief (%d MB, max %d MB)",
			path, info.Size()/(1024*1024), maxSourceSize/(1024*1024))
	}
	return nil
}
