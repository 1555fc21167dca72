package descriptions

import "sort"

// Tool descriptions with practical examples and use cases

const (
	// Form Tools
	PDFFormInfoDescription = `Summarize the interactive form of a PDF document.

**When to use:** First look at a document you intend to read form data from, or to decide whether a PDF is fillable at all.

**Why it's useful:** Reports the form type (AcroForm or XFA), how many widgets sit on each page, which field types occur, and whether the document's permissions allow filling.

**Examples:**
• Triage: "Does application.pdf have a fillable form?"
• Planning: "Which pages of tax-return.pdf carry form fields?"
• Permissions: "Is locked-contract.pdf allowed to be filled in?"

**Common workflows:**
1. Form Intake: pdf_form_info → pdf_list_widgets on pages with widgets → Map values
2. Bulk Triage: pdf_search_directory with forms_only → pdf_form_info on each hit

**Best practices:** A document without a form reports "Form: none"; there is no point calling pdf_list_widgets on it.`

	PDFListWidgetsDescription = `Read every form widget of a PDF document with its field name, label, value, options, type, flags and rectangle.

**When to use:** Need the data entered into a PDF form, or the layout of its fields.

**Why it's useful:** Resolves inherited field attributes, fully qualified names like "Applicant.Address.City", option lists of combo and list boxes, and the on-state export value of check boxes and radio buttons.

**Examples:**
• Data capture: "Get the applicant name and date of birth from application.pdf"
• Review: "List all required fields on page 0 of onboarding.pdf"
• Layout: "Where on the page is the signature field of contract.pdf?"

**Common workflows:**
1. Data Extraction: pdf_list_widgets → Group widgets by field name → Use values
2. Page Review: pdf_form_info → pdf_list_widgets with page set → Inspect fields

**Best practices:** A radio group yields one widget per button, all with the same field name; the checked one carries the group value. Rectangles are in PDF user space with the origin at the bottom left.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before reading a form, especially for files of unknown origin.

**Why it's useful:** Catches empty, oversized, mislabeled and corrupted files early, and reports the page count of valid ones.

**Examples:**
• Upload verification: "Check user-uploaded form.pdf is valid before reading it"
• Batch safety: "Validate every PDF in /intake/ before extracting form data"

**Common workflows:**
1. Automated Processing: Validate → Read form if valid → Report errors otherwise

**Best practices:** Validation failures are reported in the result text, not as tool errors.`

	// Search and Discovery Tools
	PDFSearchDirectoryDescription = `Discover PDF files across directories with fuzzy filename search and an optional forms-only filter.

**When to use:** Need to find forms by name, explore an unknown directory, or list only fillable documents.

**Why it's useful:** Quickly locates relevant documents without manual browsing; forms_only opens each candidate and keeps those that declare an interactive form.

**Examples:**
• Find forms: "Search /documents/ for 'w-9'"
• Fillable only: "List all PDFs with forms in /intake/"

**Common workflows:**
1. Form Discovery: Search with forms_only → pdf_form_info → pdf_list_widgets

**Best practices:** Hidden files and symbolic links are skipped; large trees are truncated and reported as such.`

	// Utility Tools
	PDFServerInfoDescription = `Get server status, available tools, and configuration.

**When to use:** Starting work with the PDF forms server, troubleshooting, or checking available functionality.

**Why it's useful:** Shows the configured directory and its PDF files, the file size and field depth limits, and a usage guide.

**Examples:**
• System check: "Verify the server is ready and sees my forms directory"
• Capability discovery: "Which tools does the forms server offer?"

**Best practices:** Run at the start of a session.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"pdf_form_info":        PDFFormInfoDescription,
	"pdf_list_widgets":     PDFListWidgetsDescription,
	"pdf_validate_file":    PDFValidateFileDescription,
	"pdf_search_directory": PDFSearchDirectoryDescription,
	"pdf_server_info":      PDFServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the names of all described tools, sorted
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
