package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrSourceUnavailable means the input document could not be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrUnsupportedType means no parser is registered for the file type.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Parser defines the interface for document parsers.
// Implementations declare the file types they handle (e.g. "txt", "pdf") and
// turn raw bytes into the directory's lines, trimmed and without blanks.
type Parser interface {
	Parse(content []byte) ([]string, error)
	SupportedTypes() []string
}

// Registry stores parsers by (lowercased) file type and resolves them on demand.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates a new parser registry and registers default parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}
	r.Register(NewTextParser())
	r.Register(NewPDFParser())
	return r
}

// Register adds a parser for all of its supported types.
// Later registrations for the same type will overwrite earlier ones.
func (r *Registry) Register(p Parser) {
	for _, t := range p.SupportedTypes() {
		r.parsers[strings.ToLower(t)] = p
	}
}

// GetParser returns a parser for the given file type (case-insensitive).
func (r *Registry) GetParser(fileType string) (Parser, error) {
	ft := strings.ToLower(strings.TrimPrefix(fileType, "."))
	if p, ok := r.parsers[ft]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, fileType)
}

// SupportedTypes returns a sorted list of all registered file types.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.parsers))
	for t := range r.parsers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ParseByType resolves a parser by file type and parses content.
func (r *Registry) ParseByType(fileType string, content []byte) ([]string, error) {
	p, err := r.GetParser(fileType)
	if err != nil {
		return nil, err
	}
	return p.Parse(content)
}

// ReadFile reads path and parses it with the parser for fileType, or for the
// file's extension when fileType is empty or "auto". Files without a known
// extension are read as text.
func (r *Registry) ReadFile(path, fileType string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if fileType == "" || strings.EqualFold(fileType, "auto") {
		fileType = DetectFileType(path)
	}
	return r.ParseByType(fileType, content)
}

// DetectFileType infers a type label from a filename extension.
func DetectFileType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	default:
		return "txt"
	}
}
