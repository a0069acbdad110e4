package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextParser reads the flattened directory text produced by a PDF-to-text tool.
type TextParser struct{}

// NewTextParser returns a new instance of TextParser.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse ensures the content is valid UTF-8, normalizes line endings and
// returns the trimmed, non-blank lines in order.
func (p *TextParser) Parse(content []byte) ([]string, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("content is not valid UTF-8")
	}
	return splitLines(string(content)), nil
}

// SupportedTypes returns the file types this parser supports.
func (p *TextParser) SupportedTypes() []string {
	return []string{"txt", "text"}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
