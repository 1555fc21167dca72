package pdf

import (
	"testing"

	"github.com/a3tai/mcp-pdf-forms/internal/pdf/pdftest"
)

func plainPDF() []byte { return pdftest.Plain() }

func formPDF() []byte { return pdftest.Form() }

func writePDF(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	return pdftest.Write(t, dir, name, data)
}
