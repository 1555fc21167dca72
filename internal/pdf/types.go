package pdf

import (
	pdferrors "github.com/a3tai/mcp-pdf-forms/internal/pdf/errors"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/forms"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/security"
)

// FileInfo represents information about a PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
	// HasForm is set when the search asked for form detection
	HasForm *bool `json:"has_form,omitempty"`
}

// Request Types

// PDFFormInfoRequest represents a request for a document's form overview
type PDFFormInfoRequest struct {
	Path string `json:"path"`
}

// PDFListWidgetsRequest represents a request to decode form widgets. A nil
// Page lists every page.
type PDFListWidgetsRequest struct {
	Path string `json:"path"`
	Page *int   `json:"page,omitempty"`
}

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFSearchDirectoryRequest represents a request to search for PDF files in a directory
type PDFSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
	FormsOnly bool   `json:"forms_only"`
}

// PDFServerInfoRequest represents a request to get server information and capabilities
type PDFServerInfoRequest struct{}

// Response Types

// PageWidgetSummary counts annotations and widgets on one page
type PageWidgetSummary struct {
	PageIndex       int    `json:"page_index"`
	AnnotationCount int    `json:"annotation_count"`
	WidgetCount     int    `json:"widget_count"`
	Error           string `json:"error,omitempty"`
}

// PDFFormInfoResult is the form overview of one document
type PDFFormInfoResult struct {
	Path            string                `json:"path"`
	PageCount       int                   `json:"page_count"`
	HasForm         bool                  `json:"has_form"`
	FormType        forms.FormType        `json:"form_type,omitempty"`
	IsTagged        bool                  `json:"is_tagged"`
	NeedAppearances bool                  `json:"need_appearances"`
	RootFieldCount  int                   `json:"root_field_count"`
	FieldNodeCount  int                   `json:"field_node_count"`
	WidgetCount     int                   `json:"widget_count"`
	TypeCounts      map[string]int        `json:"type_counts"`
	Encrypted       bool                  `json:"encrypted"`
	Permissions     *security.Permissions `json:"permissions,omitempty"`
	CanFillForms    bool                  `json:"can_fill_forms"`
	Pages           []PageWidgetSummary   `json:"pages"`
	IssueCount      int                   `json:"issue_count"`
}

// PageWidgets is the widget list of one page
type PageWidgets struct {
	PageIndex int                        `json:"page_index"`
	Widgets   []forms.Widget             `json:"widgets"`
	Issues    *pdferrors.ErrorCollection `json:"issues,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

// PDFListWidgetsResult holds the decoded widgets of the requested pages
type PDFListWidgetsResult struct {
	Path        string         `json:"path"`
	FormType    forms.FormType `json:"form_type"`
	PageCount   int            `json:"page_count"`
	Pages       []PageWidgets  `json:"pages"`
	WidgetCount int            `json:"widget_count"`
}

// PDFValidateFileResult represents the result of a PDF validation operation
type PDFValidateFileResult struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
	Path      string `json:"path"`
	PageCount int    `json:"page_count,omitempty"`
}

// PDFSearchDirectoryResult represents the result of a PDF search operation
type PDFSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
	FormsOnly   bool       `json:"forms_only,omitempty"`
	Truncated   bool       `json:"truncated,omitempty"`
}

// PDFServerInfoResult represents server information and usage guidance
type PDFServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	MaxFieldDepth     int        `json:"max_field_depth"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	Truncated         bool       `json:"truncated,omitempty"`
	FormCache         CacheStats `json:"form_cache"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
