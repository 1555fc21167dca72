package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/forms"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// options holds the parsed command line
type options struct {
	path          string
	format        string
	password      string
	page          int
	maxFieldDepth int
	diagnostic    bool
}

// PageResult is the output record of one page
type PageResult struct {
	PageIndex int                        `json:"page_index"`
	Widgets   []forms.Widget             `json:"widgets"`
	Issues    *pdferrors.ErrorCollection `json:"issues,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

// ExtractionResult is the complete output of one run
type ExtractionResult struct {
	FilePath    string                     `json:"file_path"`
	FormType    forms.FormType             `json:"form_type,omitempty"`
	PageCount   int                        `json:"page_count"`
	WidgetCount int                        `json:"widget_count"`
	Pages       []PageResult               `json:"pages"`
	FormIssues  *pdferrors.ErrorCollection `json:"form_issues,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, isTerminal(os.Stdout)))
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// run executes the command and returns the process exit code. JSON is the
// default format unless stdout is a terminal.
func run(args []string, stdout, stderr io.Writer, tty bool) int {
	opts, err := parseFlags(args, stderr, tty)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		fmt.Fprintln(stderr, "Run 'pdf_extract_forms --help' for usage.")
		return 2
	}

	result, err := extract(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch opts.format {
	case formatJSON:
		err = outputJSON(stdout, result)
	default:
		err = outputText(stdout, result, opts.diagnostic)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer, tty bool) (*options, error) {
	fs := pflag.NewFlagSet("pdf_extract_forms", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	defaultFormat := formatJSON
	if tty {
		defaultFormat = formatText
	}

	opts := &options{}
	fs.StringVarP(&opts.format, "format", "f", defaultFormat, "Output format: text, json")
	fs.StringVarP(&opts.password, "password", "p", "", "User password for encrypted PDF files")
	fs.IntVar(&opts.page, "page", -1, "Zero-based page index to read (all pages if negative)")
	fs.IntVar(&opts.maxFieldDepth, "max-field-depth", forms.DefaultMaxFieldDepth, "Maximum depth of form field trees")
	fs.BoolVarP(&opts.diagnostic, "diagnostic", "d", false, "Report structural issues and log parsing details")
	fs.Usage = func() { printHelp(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 1 {
		return nil, fmt.Errorf("exactly one PDF file path required")
	}
	opts.path = fs.Arg(0)

	opts.format = strings.ToLower(opts.format)
	if opts.format != formatText && opts.format != formatJSON {
		return nil, fmt.Errorf("unsupported output format: %s", opts.format)
	}
	if opts.maxFieldDepth < 1 {
		return nil, fmt.Errorf("max-field-depth must be positive")
	}
	return opts, nil
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "PDF Extract Forms - list the form widgets of a PDF document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  pdf_extract_forms [OPTIONS] <pdf_file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  pdf_extract_forms application.pdf")
	fmt.Fprintln(w, "  pdf_extract_forms --diagnostic --format text tax-form.pdf")
	fmt.Fprintln(w, "  pdf_extract_forms --page 0 --password secret locked.pdf | jq '.pages[0].widgets'")
}

// extract opens the document and decodes the requested pages. Pages that
// fail to load are reported in their result instead of aborting the run.
func extract(opts *options, stderr io.Writer) (*ExtractionResult, error) {
	absPath, err := filepath.Abs(opts.path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	openOpts := forms.Options{Password: opts.password, MaxFieldDepth: opts.maxFieldDepth}
	if opts.diagnostic {
		openOpts.Logger = log.New(stderr, "forms: ", 0)
	}

	doc, err := forms.OpenWithOptions(absPath, openOpts)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	ft, ok := doc.FormType()
	if !ok {
		return nil, fmt.Errorf("%s: %w", absPath, pdferrors.ErrNoFormEnvironment)
	}

	result := &ExtractionResult{
		FilePath:  absPath,
		FormType:  ft,
		PageCount: doc.PageCount(),
		Pages:     []PageResult{},
	}
	if env := doc.FormEnvironment(); env != nil && !env.Issues().Empty() {
		result.FormIssues = env.Issues()
	}

	addPage := func(index int, p *forms.Page, err error) {
		pr := PageResult{PageIndex: index, Widgets: []forms.Widget{}}
		if err == nil {
			var report *forms.WidgetReport
			report, err = p.WidgetsReport()
			if err == nil {
				pr.Widgets = report.Widgets
				if !report.Issues.Empty() {
					pr.Issues = report.Issues
				}
			}
		}
		if err != nil {
			pr.Error = err.Error()
		}
		result.WidgetCount += len(pr.Widgets)
		result.Pages = append(result.Pages, pr)
	}

	if opts.page >= 0 {
		p, err := doc.Page(opts.page)
		if errors.Is(err, pdferrors.ErrIndexOutOfRange) {
			return nil, fmt.Errorf("page %d: %w", opts.page, err)
		}
		addPage(opts.page, p, err)
		return result, nil
	}

	for i := range doc.PageCount() {
		p, err := doc.Page(i)
		addPage(i, p, err)
	}
	return result, nil
}

func outputJSON(w io.Writer, result *ExtractionResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(w io.Writer, result *ExtractionResult, diagnostic bool) error {
	var b strings.Builder

	fmt.Fprintf(&b, "File: %s\n", result.FilePath)
	fmt.Fprintf(&b, "Form type: %s\n", result.FormType)
	fmt.Fprintf(&b, "Pages: %d\n", result.PageCount)

	if result.WidgetCount == 0 {
		b.WriteString("⚠️  No form widgets found\n")
	} else {
		fmt.Fprintf(&b, "✅ Found %d form widgets\n", result.WidgetCount)
	}

	for _, p := range result.Pages {
		if p.Error != "" {
			fmt.Fprintf(&b, "\nPage %d: ❌ %s\n", p.PageIndex, p.Error)
			continue
		}
		if len(p.Widgets) == 0 && (!diagnostic || p.Issues == nil) {
			continue
		}

		fmt.Fprintf(&b, "\nPage %d\n", p.PageIndex)
		for i, w := range p.Widgets {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, w.FieldName)
			fmt.Fprintf(&b, "    Type: %s (%d)\n", w.FieldTypeString, w.FieldType)
			if w.FieldLabel != "" {
				fmt.Fprintf(&b, "    Label: %s\n", w.FieldLabel)
			}
			fmt.Fprintf(&b, "    Value: %q\n", w.FieldValue)
			if w.ChoiceValues != nil {
				fmt.Fprintf(&b, "    Options: %s\n", strings.Join(w.ChoiceValues, ", "))
			}
			if w.ExportValue != "" {
				fmt.Fprintf(&b, "    Export value: %s (checked: %t)\n", w.ExportValue, w.Checked)
			}
			if props := flagNames(w); len(props) > 0 {
				fmt.Fprintf(&b, "    Properties: %s\n", strings.Join(props, ", "))
			}
			fmt.Fprintf(&b, "    Rect: left %.1f top %.1f right %.1f bottom %.1f\n",
				w.Rect.Left, w.Rect.Top, w.Rect.Right, w.Rect.Bottom)
		}
		if diagnostic {
			writeIssues(&b, p.Issues, "    ")
		}
	}

	if diagnostic && result.FormIssues != nil {
		b.WriteString("\nForm structure issues:\n")
		writeIssues(&b, result.FormIssues, "  ")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeIssues(b *strings.Builder, issues *pdferrors.ErrorCollection, indent string) {
	if issues == nil {
		return
	}
	for _, e := range issues.Errors {
		fmt.Fprintf(b, "%s❌ %s\n", indent, e.Error())
	}
	for _, e := range issues.Warnings {
		fmt.Fprintf(b, "%s⚠️  %s\n", indent, e.Error())
	}
}

func flagNames(w forms.Widget) []string {
	var names []string
	if w.FieldFlags&forms.FlagReadOnly != 0 {
		names = append(names, "ReadOnly")
	}
	if w.FieldFlags&forms.FlagRequired != 0 {
		names = append(names, "Required")
	}
	if w.FieldFlags&forms.FlagMultiSelect != 0 {
		names = append(names, "MultiSelect")
	}
	if w.FieldFlags&forms.FlagPassword != 0 {
		names = append(names, "Password")
	}
	return names
}
