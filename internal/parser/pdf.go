package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dslipak/pdf"
)

// PDFParser extracts the plain text layer of a PDF directory.
type PDFParser struct{}

// NewPDFParser returns a new instance of PDFParser.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse validates the PDF signature, extracts the text of every page and
// splits it into lines like TextParser does.
func (p *PDFParser) Parse(content []byte) ([]string, error) {
	if len(content) < 4 || string(content[:4]) != "%PDF" {
		return nil, fmt.Errorf("invalid PDF content: missing '%%PDF' signature")
	}

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	text, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, text); err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}
	return splitLines(buf.String()), nil
}

// SupportedTypes returns file types handled by PDFParser.
func (p *PDFParser) SupportedTypes() []string {
	return []string{"pdf"}
}
