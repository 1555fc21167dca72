package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/forms"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/pdftest"
)

func TestFormReader_HasForm(t *testing.T) {
	dir := t.TempDir()
	r := NewFormReader(forms.Options{})

	hasForm, err := r.HasForm(writePDF(t, dir, "form.pdf", formPDF()))
	require.NoError(t, err)
	assert.True(t, hasForm)

	hasForm, err = r.HasForm(writePDF(t, dir, "plain.pdf", plainPDF()))
	require.NoError(t, err)
	assert.False(t, hasForm)

	_, err = r.HasForm(writePDF(t, dir, "garbage.pdf", []byte("nope")))
	assert.ErrorIs(t, err, pdferrors.ErrOpen)
}

func TestFormReader_FormInfo(t *testing.T) {
	path := writePDF(t, t.TempDir(), "form.pdf", formPDF())

	info, err := NewFormReader(forms.Options{}).FormInfo(path)
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Equal(t, 2, info.PageCount)
	assert.True(t, info.HasForm)
	assert.Equal(t, forms.FormTypeAcroForm, info.FormType)
	assert.False(t, info.Encrypted)
	assert.Nil(t, info.Permissions)
	assert.True(t, info.CanFillForms)
	assert.Equal(t, 3, info.RootFieldCount)
	assert.Equal(t, 3, info.WidgetCount)
	assert.Equal(t, 0, info.IssueCount)
	assert.Equal(t, map[string]int{"Text": 1, "CheckBox": 1, "ListBox": 1}, info.TypeCounts)

	require.Len(t, info.Pages, 2)
	assert.Equal(t, PageWidgetSummary{PageIndex: 0, AnnotationCount: 2, WidgetCount: 2}, info.Pages[0])
	assert.Equal(t, PageWidgetSummary{PageIndex: 1, AnnotationCount: 2, WidgetCount: 1}, info.Pages[1])
}

func TestFormReader_FormInfo_NoForm(t *testing.T) {
	path := writePDF(t, t.TempDir(), "plain.pdf", plainPDF())

	info, err := NewFormReader(forms.Options{}).FormInfo(path)
	require.NoError(t, err)
	assert.False(t, info.HasForm)
	assert.Equal(t, 2, info.PageCount)
	assert.Empty(t, info.Pages)
	assert.Zero(t, info.WidgetCount)
}

func TestFormReader_ListWidgets(t *testing.T) {
	path := writePDF(t, t.TempDir(), "form.pdf", formPDF())
	r := NewFormReader(forms.Options{})

	t.Run("all pages", func(t *testing.T) {
		result, err := r.ListWidgets(path, nil)
		require.NoError(t, err)
		assert.Equal(t, forms.FormTypeAcroForm, result.FormType)
		assert.Equal(t, 2, result.PageCount)
		assert.Equal(t, 3, result.WidgetCount)
		require.Len(t, result.Pages, 2)

		names := []string{}
		for _, p := range result.Pages {
			for _, w := range p.Widgets {
				names = append(names, w.FieldName)
			}
		}
		assert.Equal(t, []string{"Name", "Subscribe", "Pets"}, names)
	})

	t.Run("single page", func(t *testing.T) {
		page := 1
		result, err := r.ListWidgets(path, &page)
		require.NoError(t, err)
		require.Len(t, result.Pages, 1)
		assert.Equal(t, 1, result.Pages[0].PageIndex)
		require.Len(t, result.Pages[0].Widgets, 1)

		w := result.Pages[0].Widgets[0]
		assert.Equal(t, "Pets", w.FieldName)
		assert.Equal(t, "Dog", w.FieldValue)
		assert.Equal(t, []string{"Cat", "Dog"}, w.ChoiceValues)
	})

	t.Run("page out of range", func(t *testing.T) {
		page := 5
		_, err := r.ListWidgets(path, &page)
		assert.ErrorIs(t, err, pdferrors.ErrIndexOutOfRange)
	})

	t.Run("no form", func(t *testing.T) {
		_, err := r.ListWidgets(writePDF(t, t.TempDir(), "plain.pdf", plainPDF()), nil)
		assert.ErrorIs(t, err, pdferrors.ErrNoFormEnvironment)
	})
}

func TestFormReader_ListWidgets_UnreadablePage(t *testing.T) {
	// The page tree claims two pages but holds one.
	path := writePDF(t, t.TempDir(), "short.pdf", pdftest.Build(
		"<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [4 0 R] >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R "+pdftest.MediaBox+" /Annots [4 0 R] >>",
		"<< /Type /Annot /Subtype /Widget /FT /Tx /T (Only) /V (x) /Rect [0 0 10 10] >>",
	))

	result, err := NewFormReader(forms.Options{}).ListWidgets(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.PageCount)
	assert.Equal(t, 1, result.WidgetCount)
	require.Len(t, result.Pages, 2)

	assert.Empty(t, result.Pages[0].Error)
	require.Len(t, result.Pages[0].Widgets, 1)
	assert.Equal(t, "Only", result.Pages[0].Widgets[0].FieldName)

	assert.Equal(t, 1, result.Pages[1].PageIndex)
	assert.Empty(t, result.Pages[1].Widgets)
	assert.Contains(t, result.Pages[1].Error, "page dictionary missing")
}
