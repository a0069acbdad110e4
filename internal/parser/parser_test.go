package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextParserNormalizesLines(t *testing.T) {
	lines, err := NewTextParser().Parse([]byte("  05Council District: A CIVIC \r\n\r\nPO Box 1\rContact Information:\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"05Council District: A CIVIC", "PO Box 1", "Contact Information:"}, lines)
}

func TestTextParserRejectsInvalidUTF8(t *testing.T) {
	_, err := NewTextParser().Parse([]byte{0xff, 0xfe, 'a'})
	assert.Error(t, err)
}

func TestPDFParserRequiresSignature(t *testing.T) {
	_, err := NewPDFParser().Parse([]byte("not a pdf"))
	assert.ErrorContains(t, err, "%PDF")
}

func TestRegistryResolvesByType(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"pdf", "text", "txt"}, r.SupportedTypes())

	p, err := r.GetParser(".TXT")
	require.NoError(t, err)
	assert.IsType(t, &TextParser{}, p)

	_, err = r.GetParser("eml")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "civics.txt")
	require.NoError(t, os.WriteFile(path, []byte("Area:\nPRESIDENT JOHN SMITH\n"), 0o644))

	lines, err := NewRegistry().ReadFile(path, "auto")
	require.NoError(t, err)
	assert.Equal(t, []string{"Area:", "PRESIDENT JOHN SMITH"}, lines)
}

func TestReadFileMissingSource(t *testing.T) {
	_, err := NewRegistry().ReadFile(filepath.Join(t.TempDir(), "missing.txt"), "")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, "pdf", DetectFileType("civics.PDF"))
	assert.Equal(t, "txt", DetectFileType("civics.txt"))
	assert.Equal(t, "txt", DetectFileType("civics"))
}
