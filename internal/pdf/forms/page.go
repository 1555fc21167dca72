package forms

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
)

// Page is one page of a Document. It is only valid while the Document is
// open.
type Page struct {
	doc   *Document
	index int
	dict  types.Dict
}

// WidgetReport is the result of decoding a page's widgets together with the
// non-fatal issues met on the way.
type WidgetReport struct {
	PageIndex int                        `json:"page_index"`
	Widgets   []Widget                   `json:"widgets"`
	Issues    *pdferrors.ErrorCollection `json:"issues"`
}

// Index returns the zero-based page index.
func (p *Page) Index() int {
	return p.index
}

// Widgets decodes every widget annotation on the page in /Annots order.
// It fails with ErrNoFormEnvironment when the document has no form.
func (p *Page) Widgets() ([]Widget, error) {
	report, err := p.WidgetsReport()
	if err != nil {
		return nil, err
	}
	return report.Widgets, nil
}

// WidgetsReport is Widgets plus the per-widget issues.
func (p *Page) WidgetsReport() (*WidgetReport, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	env := p.doc.formEnv
	if env == nil {
		return nil, pdferrors.NewPDFError(pdferrors.ErrorTypeNoFormEnvironment,
			"document has no form").WithPage(p.index).WithFile(p.doc.path)
	}

	report := &WidgetReport{
		PageIndex: p.index,
		Widgets:   make([]Widget, 0),
		Issues:    pdferrors.NewErrorCollection(p.doc.path),
	}

	annots, err := p.annotations()
	if err != nil {
		report.Issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeMalformedPage,
			"cannot read Annots", err).WithPage(p.index))
		p.doc.logger.Printf("Page %d: %v", p.index, err)
		return report, nil
	}

	acc := p.doc.acc
	for i, obj := range annots {
		objNr := objectNumber(obj)
		annot, err := acc.dict(obj)
		if err != nil {
			report.Issues.Add(pdferrors.WrapError(pdferrors.ErrorTypeInvalidAnnotation,
				fmt.Sprintf("cannot read annotation %d", i), err).WithPage(p.index).WithObject(objNr))
			continue
		}
		if !isWidget(acc, annot) {
			continue
		}

		issues := pdferrors.NewErrorCollection(p.doc.path)
		w := extractWidget(acc, env, annot, objNr, issues)
		for _, e := range append(issues.Errors, issues.Warnings...) {
			report.Issues.Add(e.WithPage(p.index))
		}
		report.Widgets = append(report.Widgets, w)
	}

	if !report.Issues.Empty() {
		p.doc.logger.Printf("Page %d: %d widgets, %s", p.index, len(report.Widgets), report.Issues.Summary())
	}
	return report, nil
}

// AnnotationCount returns the number of entries in the page's /Annots array.
func (p *Page) AnnotationCount() (int, error) {
	if err := p.check(); err != nil {
		return 0, err
	}
	annots, err := p.annotations()
	if err != nil {
		return 0, pdferrors.WrapError(pdferrors.ErrorTypeMalformedPage, "cannot read Annots", err).WithPage(p.index)
	}
	return len(annots), nil
}

func (p *Page) check() error {
	if p.doc == nil || p.doc.closed {
		return pdferrors.NewPDFError(pdferrors.ErrorTypeDocumentClosed, "page used after document was closed").
			WithPage(p.index)
	}
	return nil
}

func (p *Page) annotations() (types.Array, error) {
	obj, found := p.dict.Find("Annots")
	if !found {
		return nil, nil
	}
	return p.doc.acc.array(obj)
}

func isWidget(acc *accessor, annot types.Dict) bool {
	obj, found := annot.Find("Subtype")
	if !found {
		return false
	}
	subtype, err := acc.name(obj)
	return err == nil && subtype == "Widget"
}
