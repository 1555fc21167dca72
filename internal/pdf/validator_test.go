package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := writePDF(t, dir, "valid.pdf", plainPDF())
	garbage := writePDF(t, dir, "garbage.pdf", []byte("this is not a pdf"))
	empty := writePDF(t, dir, "empty.pdf", nil)
	text := writePDF(t, dir, "notes.txt", []byte("hello"))
	large := writePDF(t, dir, "large.pdf", make([]byte, 2048))

	v := NewValidator(1024)

	tests := []struct {
		name      string
		path      string
		wantValid bool
		wantPages int
		wantMsg   string
	}{
		{name: "valid pdf", path: valid, wantValid: true, wantPages: 2},
		{name: "unparsable", path: garbage, wantMsg: "invalid PDF file"},
		{name: "empty", path: empty, wantMsg: "file is empty"},
		{name: "wrong extension", path: text, wantMsg: "file is not a PDF"},
		{name: "too large", path: large, wantMsg: "file too large"},
		{name: "missing", path: filepath.Join(dir, "missing.pdf"), wantMsg: "file does not exist"},
		{name: "directory", path: dir, wantMsg: "path is a directory"},
		{name: "empty path", path: "", wantMsg: "path cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateFile(PDFValidateFileRequest{Path: tt.path})
			require.NoError(t, err)
			assert.Equal(t, tt.path, result.Path)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantPages, result.PageCount)
			if tt.wantMsg != "" {
				assert.Contains(t, result.Message, tt.wantMsg)
			} else {
				assert.Empty(t, result.Message)
			}
		})
	}
}

func TestValidator_IsValidPDF(t *testing.T) {
	dir := t.TempDir()
	v := NewValidator(1 << 20)

	assert.True(t, v.IsValidPDF(writePDF(t, dir, "ok.pdf", formPDF())))
	assert.False(t, v.IsValidPDF(writePDF(t, dir, "bad.pdf", []byte("%PDF-1.7 truncated"))))
}

func TestValidator_ValidateFileInfo(t *testing.T) {
	dir := t.TempDir()
	path := writePDF(t, dir, "doc.PDF", plainPDF())
	info, err := os.Stat(path)
	require.NoError(t, err)

	assert.NoError(t, NewValidator(1<<20).ValidateFileInfo(path, info))
	assert.Error(t, NewValidator(10).ValidateFileInfo(path, info))
}
