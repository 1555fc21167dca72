// Package pdftest builds small, structurally exact PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MediaBox is a US Letter page box.
const MediaBox = "/MediaBox [0 0 612 792]"

// Build assembles a classic-xref PDF from object bodies. Object i+1 is
// objs[i]; object 1 must be the catalog.
func Build(objs ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xrefStart)
	return buf.Bytes()
}

// Plain has two pages and no form.
func Plain() []byte {
	return Build(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R "+MediaBox+" >>",
		"<< /Type /Page /Parent 2 0 R "+MediaBox+" >>",
	)
}

// Form has two pages. Page 0 holds a text field "Name" valued "Ada" and a
// checked checkbox "Subscribe"; page 1 holds a list box "Pets" with options
// Cat and Dog valued "Dog", followed by a link annotation.
func Form() []byte {
	return Build(
		// 1
		"<< /Type /Catalog /Pages 2 0 R /AcroForm 5 0 R >>",
		// 2
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		// 3
		"<< /Type /Page /Parent 2 0 R "+MediaBox+" /Annots [6 0 R 7 0 R] >>",
		// 4
		"<< /Type /Page /Parent 2 0 R "+MediaBox+" /Annots [8 0 R 9 0 R] >>",
		// 5
		"<< /Fields [6 0 R 7 0 R 8 0 R] >>",
		// 6
		"<< /Type /Annot /Subtype /Widget /FT /Tx /T (Name) /V (Ada) /Rect [10 10 110 30] >>",
		// 7
		"<< /Type /Annot /Subtype /Widget /FT /Btn /T (Subscribe) /V /Yes /AS /Yes /Rect [10 40 22 52] >>",
		// 8
		"<< /Type /Annot /Subtype /Widget /FT /Ch /T (Pets) /Opt [(Cat) (Dog)] /V (Dog) /Rect [10 60 110 120] >>",
		// 9
		"<< /Type /Annot /Subtype /Link /Rect [0 0 5 5] >>",
	)
}

// Write stores data as dir/name, creating parent directories, and returns
// the path.
func Write(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "create directory for %s", name)
	require.NoError(t, os.WriteFile(path, data, 0o600), "write %s", name)
	return path
}
