package forms

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-pdf-forms/internal/pdf/pdftest"
)

// testPDF is a PDF under construction. Object i+1 is objs[i]; object 1 must
// be the catalog.
type testPDF struct {
	objs []string
}

func newTestPDF(objs ...string) *testPDF {
	return &testPDF{objs: objs}
}

func (p *testPDF) bytes() []byte {
	return pdftest.Build(p.objs...)
}

// open parses the PDF from memory.
func (p *testPDF) open(t *testing.T) *Document {
	t.Helper()
	doc, err := OpenReader(bytes.NewReader(p.bytes()), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { doc.Close() })
	return doc
}

// writeFile stores the PDF under t.TempDir and returns its path.
func (p *testPDF) writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, p.bytes(), 0o600))
	return path
}

const mediaBox = pdftest.MediaBox

// noWidgetsPDF has an AcroForm but no annotations on its single page.
func noWidgetsPDF() *testPDF {
	return newTestPDF(
		"<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [] >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R "+mediaBox+" >>",
	)
}

// noFormPDF has two pages and no AcroForm.
func noFormPDF() *testPDF {
	return newTestPDF(
		"<< /Type /Catalog /Pages 2 0 R /MarkInfo << /Marked true >> >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R "+mediaBox+" >>",
		"<< /Type /Page /Parent 2 0 R "+mediaBox+" >>",
	)
}

// formPDF has one page holding, in /Annots order: a combo box, a text field
// whose value lives on its parent, a link annotation, two radio widgets of
// one group, a checkbox and a signature.
func formPDF() *testPDF {
	return newTestPDF(
		// 1 catalog
		"<< /Type /Catalog /Pages 2 0 R /AcroForm 4 0 R >>",
		// 2 pages
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		// 3 page
		"<< /Type /Page /Parent 2 0 R "+mediaBox+" /Annots [5 0 R 7 0 R 8 0 R 10 0 R 11 0 R 12 0 R 13 0 R] >>",
		// 4 acroform
		"<< /Fields [5 0 R 6 0 R 9 0 R 12 0 R 13 0 R] /NeedAppearances true >>",
		// 5 combo box
		"<< /Type /Annot /Subtype /Widget /FT /Ch /Ff 131072 /T (Colour) /TU (Favourite colour) " +
			"/Opt [(Red) (Green) (Blue)] /V (Green) /Rect [100 700 200 720] /P 3 0 R >>",
		// 6 text parent
		"<< /FT /Tx /T (Parent) /V (X) /Kids [7 0 R] >>",
		// 7 text widget
		"<< /Type /Annot /Subtype /Widget /Parent 6 0 R /T (Child) /Rect [100 600 300 620] /P 3 0 R >>",
		// 8 link
		"<< /Type /Annot /Subtype /Link /Rect [0 0 10 10] >>",
		// 9 radio group
		"<< /FT /Btn /Ff 49152 /T (Size) /V /L /Kids [10 0 R 11 0 R] >>",
		// 10 radio widget S
		"<< /Type /Annot /Subtype /Widget /Parent 9 0 R /AS /Off " +
			"/AP << /N << /S 14 0 R /Off 14 0 R >> >> /Rect [100 500 112 512] >>",
		// 11 radio widget L
		"<< /Type /Annot /Subtype /Widget /Parent 9 0 R /AS /L " +
			"/AP << /N << /L 14 0 R /Off 14 0 R >> >> /Rect [120 500 132 512] >>",
		// 12 checkbox without value
		"<< /Type /Annot /Subtype /Widget /FT /Btn /T (Agree) /Ff 2 /AS /Off " +
			"/AP << /N << /Yes 14 0 R /Off 14 0 R >> >> /Rect [100 400 112 412] >>",
		// 13 signature
		"<< /Type /Annot /Subtype /Widget /FT /Sig /T (Sign) /Rect [300 100 500 150] >>",
		// 14 appearance
		"<< /Type /XObject /Subtype /Form /BBox [0 0 12 12] >>",
	)
}
