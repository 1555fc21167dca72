package forms

import (
	"fmt"
	"io"
	"iter"
	"log"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
)

// Options controls how a Document is opened.
type Options struct {
	// Password is passed to pdfcpu as the user password of encrypted files.
	Password string
	// MaxFieldDepth caps field tree depth and Parent chains.
	// Zero means DefaultMaxFieldDepth.
	MaxFieldDepth int
	// Logger receives debug output. Nil discards it unless Debug is set.
	Logger *log.Logger
	// Debug logs to stderr when no Logger is given.
	Debug bool
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.Debug {
		return log.New(os.Stderr, "forms: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// Document is an open PDF together with its form environment. A Document is
// not safe for concurrent use.
type Document struct {
	ctx     *model.Context
	acc     *accessor
	formEnv *FormEnvironment
	tagged  bool
	perms   int
	crypted bool
	path    string
	logger  *log.Logger
	closed  bool
}

// Open opens the PDF at path with default options.
func Open(path string) (*Document, error) {
	return OpenWithOptions(path, Options{})
}

// OpenWithOptions opens the PDF at path.
func OpenWithOptions(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pdferrors.WrapError(pdferrors.ErrorTypeOpen, "failed to open PDF file", err).WithFile(path)
	}
	defer f.Close()

	doc, err := open(f, path, opts)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// OpenReader opens a PDF from rs. The reader is fully consumed by pdfcpu and
// may be closed once OpenReader returns.
func OpenReader(rs io.ReadSeeker, opts Options) (*Document, error) {
	return open(rs, "", opts)
}

func open(rs io.ReadSeeker, path string, opts Options) (*Document, error) {
	logger := opts.logger()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if opts.Password != "" {
		conf.UserPW = opts.Password
	}

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, pdferrors.WrapError(pdferrors.ErrorTypeOpen, "failed to read PDF context", err).WithFile(path)
	}

	doc := &Document{
		ctx:    ctx,
		acc:    newAccessor(ctx),
		path:   path,
		logger: logger,
	}

	if err := doc.init(opts); err != nil {
		doc.Close()
		return nil, err
	}
	return doc, nil
}

// init reads the page count and catalog and builds the form environment.
func (d *Document) init(opts Options) error {
	if err := d.ctx.EnsurePageCount(); err != nil {
		return pdferrors.WrapError(pdferrors.ErrorTypeOpen, "failed to ensure page count", err).WithFile(d.path)
	}

	catalog, err := d.ctx.Catalog()
	if err != nil {
		return pdferrors.WrapError(pdferrors.ErrorTypeOpen, "failed to get catalog", err).WithFile(d.path)
	}

	if d.ctx.Encrypt != nil && d.ctx.E != nil {
		d.crypted = true
		d.perms = d.ctx.E.P
	}

	if obj, found := catalog.Find("MarkInfo"); found {
		if markInfo, err := d.acc.dict(obj); err == nil {
			if marked, found := markInfo.Find("Marked"); found {
				d.tagged = d.acc.boolean(marked)
			}
		}
	}

	formType, acroForm, ok := detectFormType(d.acc, catalog)
	if !ok {
		d.logger.Printf("No AcroForm dictionary found in document")
		return nil
	}
	d.formEnv = newFormEnvironment(d.acc, formType, acroForm, opts.MaxFieldDepth, d.logger)
	return nil
}

// Close releases the form environment and then the document. It is safe to
// call more than once.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if d.formEnv != nil {
		d.formEnv.release()
		d.formEnv = nil
	}
	d.acc = nil
	d.ctx = nil
	return nil
}

// FormType returns the declared form type; ok is false when the document has
// no form.
func (d *Document) FormType() (ft FormType, ok bool) {
	if d.formEnv == nil {
		return "", false
	}
	return d.formEnv.FormType(), true
}

// HasForm reports whether a form environment exists.
func (d *Document) HasForm() bool {
	return d.formEnv != nil
}

// FormEnvironment returns the shared form environment, or nil.
func (d *Document) FormEnvironment() *FormEnvironment {
	return d.formEnv
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	if d.closed {
		return 0
	}
	return d.ctx.PageCount
}

// Page returns the page at the zero-based index.
func (d *Document) Page(index int) (*Page, error) {
	if d.closed {
		return nil, pdferrors.NewPDFError(pdferrors.ErrorTypeDocumentClosed, "document is closed").WithFile(d.path)
	}
	if index < 0 || index >= d.ctx.PageCount {
		return nil, pdferrors.NewPDFErrorWithContext(pdferrors.ErrorTypeIndexOutOfRange, "page index out of range",
			fmt.Sprintf("index %d, document has %d pages", index, d.ctx.PageCount)).WithPage(index).WithFile(d.path)
	}

	dict, _, _, err := d.ctx.PageDict(index+1, false)
	if err != nil {
		return nil, pdferrors.WrapError(pdferrors.ErrorTypeMalformedPage, "cannot read page dictionary", err).
			WithPage(index).WithFile(d.path)
	}
	if dict == nil {
		return nil, pdferrors.NewPDFError(pdferrors.ErrorTypeMalformedPage, "page dictionary missing").
			WithPage(index).WithFile(d.path)
	}

	return &Page{doc: d, index: index, dict: dict}, nil
}

// Pages yields every page in index order. Each range over the sequence starts
// again at page 0. A page that cannot be read is yielded as an error and
// iteration continues with the next one.
func (d *Document) Pages() iter.Seq2[*Page, error] {
	return func(yield func(*Page, error) bool) {
		for i := 0; i < d.PageCount(); i++ {
			if !yield(d.Page(i)) {
				return
			}
		}
	}
}

// IsTagged reports whether the catalog marks the document as tagged PDF.
func (d *Document) IsTagged() bool {
	return d.tagged
}

// Permissions returns the /P value of the encryption dictionary; ok is false
// when the document is not encrypted.
func (d *Document) Permissions() (p int, ok bool) {
	return d.perms, d.crypted
}

// Save is not supported; documents are read-only.
func (d *Document) Save(w io.Writer) error {
	return pdferrors.NewPDFError(pdferrors.ErrorTypeNotImplemented, "saving documents is not supported")
}

// Path returns the file path the document was opened from, if any.
func (d *Document) Path() string {
	return d.path
}
