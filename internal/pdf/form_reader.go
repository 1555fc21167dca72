package pdf

import (
	"fmt"
	"log"

	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/forms"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/security"
)

// FormReader opens documents with the configured options and turns their
// form widgets into service results. Every call opens and closes its own
// Document, so a FormReader is safe for concurrent use.
type FormReader struct {
	opts forms.Options
}

// NewFormReader creates a form reader. opts are passed to forms.OpenWithOptions.
func NewFormReader(opts forms.Options) *FormReader {
	return &FormReader{opts: opts}
}

func (r *FormReader) open(path string) (*forms.Document, error) {
	doc, err := forms.OpenWithOptions(path, r.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return doc, nil
}

// HasForm reports whether the file declares an interactive form.
func (r *FormReader) HasForm(path string) (bool, error) {
	doc, err := r.open(path)
	if err != nil {
		return false, err
	}
	defer doc.Close()
	return doc.HasForm(), nil
}

// FormInfo summarizes the form of the document at path.
func (r *FormReader) FormInfo(path string) (*PDFFormInfoResult, error) {
	doc, err := r.open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	result := &PDFFormInfoResult{
		Path:         path,
		PageCount:    doc.PageCount(),
		HasForm:      doc.HasForm(),
		IsTagged:     doc.IsTagged(),
		TypeCounts:   make(map[string]int),
		Pages:        make([]PageWidgetSummary, 0, doc.PageCount()),
		CanFillForms: true,
	}

	if p, ok := doc.Permissions(); ok {
		perms := security.NewPermissions(p)
		result.Encrypted = true
		result.Permissions = &perms
		result.CanFillForms = perms.CanFillForms()
	}

	env := doc.FormEnvironment()
	if env == nil {
		return result, nil
	}
	result.FormType = env.FormType()
	result.NeedAppearances = env.NeedAppearances()
	result.RootFieldCount = len(env.Fields())
	result.FieldNodeCount = env.NodeCount()
	result.IssueCount = issueCount(env.Issues())

	for page, err := range doc.Pages() {
		if err != nil {
			result.Pages = append(result.Pages, PageWidgetSummary{PageIndex: len(result.Pages), Error: err.Error()})
			continue
		}
		summary := PageWidgetSummary{PageIndex: page.Index()}

		count, err := page.AnnotationCount()
		if err != nil {
			summary.Error = err.Error()
			result.Pages = append(result.Pages, summary)
			continue
		}
		summary.AnnotationCount = count

		report, err := page.WidgetsReport()
		if err != nil {
			summary.Error = err.Error()
			result.Pages = append(result.Pages, summary)
			continue
		}
		summary.WidgetCount = len(report.Widgets)
		result.WidgetCount += len(report.Widgets)
		result.IssueCount += issueCount(report.Issues)
		for _, w := range report.Widgets {
			result.TypeCounts[w.FieldTypeString]++
		}

		result.Pages = append(result.Pages, summary)
	}

	return result, nil
}

// ListWidgets decodes the widgets of one page, or of every page when page is
// nil. Documents without a form fail with forms' no-form error. When listing
// every page, a page that cannot be read is kept in the result with Error set.
func (r *FormReader) ListWidgets(path string, page *int) (*PDFListWidgetsResult, error) {
	doc, err := r.open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	ft, ok := doc.FormType()
	if !ok {
		return nil, pdferrors.NewPDFError(pdferrors.ErrorTypeNoFormEnvironment, "document has no form").WithFile(path)
	}

	result := &PDFListWidgetsResult{
		Path:      path,
		FormType:  ft,
		PageCount: doc.PageCount(),
		Pages:     make([]PageWidgets, 0),
	}

	add := func(p *forms.Page) error {
		report, err := p.WidgetsReport()
		if err != nil {
			return err
		}
		pw := PageWidgets{PageIndex: report.PageIndex, Widgets: report.Widgets}
		if !report.Issues.Empty() {
			pw.Issues = report.Issues
		}
		result.Pages = append(result.Pages, pw)
		result.WidgetCount += len(report.Widgets)
		return nil
	}

	if page != nil {
		p, err := doc.Page(*page)
		if err != nil {
			return nil, err
		}
		if err := add(p); err != nil {
			return nil, err
		}
		return result, nil
	}

	for i := range doc.PageCount() {
		p, err := doc.Page(i)
		if err == nil {
			err = add(p)
		}
		if err != nil {
			log.Printf("Page %d of %s: %v", i, path, err)
			result.Pages = append(result.Pages, PageWidgets{PageIndex: i, Widgets: []forms.Widget{}, Error: err.Error()})
		}
	}
	return result, nil
}

func issueCount(c *pdferrors.ErrorCollection) int {
	if c == nil {
		return 0
	}
	errs, warnings := c.Count()
	return errs + warnings
}
