package pdf

import (
	"context"
	"fmt"
	"time"
)

// Server info scan limits
const (
	serverInfoFileLimit = 100
	serverInfoScanTime  = 3 * time.Second
)

// AvailableTools describes the MCP tools exposed by the server.
func AvailableTools() []ToolInfo {
	return []ToolInfo{
		{
			Name:        "pdf_form_info",
			Description: "Summarize the interactive form of a PDF file",
			Usage: "Use this tool first on a document: it reports whether a form exists, its type, " +
				"per-page widget counts, field type counts and whether filling is permitted.",
			Parameters: "path (required): Path to the PDF file (absolute or relative to the server directory)",
		},
		{
			Name:        "pdf_list_widgets",
			Description: "List the form widgets of a PDF file with names, values, options and rectangles",
			Usage: "Use this tool to read the form data. Every widget annotation yields one entry, so a " +
				"radio group with three buttons yields three entries with the same field name.",
			Parameters: "path (required): Path to the PDF file, " +
				"page (optional): Zero-based page index; all pages when omitted",
		},
		{
			Name:        "pdf_validate_file",
			Description: "Validate if a file is a readable PDF",
			Usage:       "Use this tool to check a file before reading its form.",
			Parameters:  "path (required): Path to the PDF file",
		},
		{
			Name:        "pdf_search_directory",
			Description: "Search for PDF files in a directory with optional fuzzy search",
			Usage: "Use this tool to find documents. Set forms_only to keep only files that declare " +
				"an interactive form.",
			Parameters: "directory (optional): Directory to search (server directory if empty), " +
				"query (optional): Fuzzy filename query, " +
				"forms_only (optional): \"true\" to keep only files with a form",
		},
		{
			Name:        "pdf_server_info",
			Description: "Get server information, available tools, directory contents, and usage guidance",
			Usage:       "Use this tool to discover what the server can do.",
			Parameters:  "none",
		},
	}
}

func usageGuidance(maxFileSize int64) string {
	return fmt.Sprintf(`PDF Forms MCP Server Usage Guide:

1. DISCOVER:
   - Use 'pdf_search_directory' with forms_only=true to find fillable documents

2. VALIDATE:
   - Use 'pdf_validate_file' to check a file is a readable PDF

3. INSPECT:
   - Use 'pdf_form_info' to see the form type and how many widgets each page holds

4. READ:
   - Use 'pdf_list_widgets' to get every widget's field name, label, value,
     option list, type, flags and rectangle
   - Pass 'page' to read a single page (zero-based)

NOTES:
- Field values are read-only; the server never modifies documents
- XFA forms are reported by type but only their AcroForm widgets are read
- The server can handle files up to %dMB`, maxFileSize/(1024*1024))
}

// PDFServerInfo assembles the server description. Directory listing is
// bounded in file count and time; a slow or unreadable directory yields an
// empty, truncated listing instead of an error.
func (s *Service) PDFServerInfo(ctx context.Context, _ PDFServerInfoRequest, serverName, version string) (*PDFServerInfoResult, error) {
	dir := s.pathValidator.GetConfiguredDirectory()

	scanCtx, cancel := context.WithTimeout(ctx, serverInfoScanTime)
	defer cancel()

	files, truncated, err := s.search.FindPDFsLimited(scanCtx, dir, serverInfoFileLimit)
	if err != nil {
		files, truncated = []FileInfo{}, true
	}

	return &PDFServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  dir,
		MaxFileSize:       s.maxFileSize,
		MaxFieldDepth:     s.maxFieldDepth,
		AvailableTools:    AvailableTools(),
		DirectoryContents: files,
		Truncated:         truncated,
		FormCache:         s.search.CacheStats(),
		UsageGuidance:     usageGuidance(s.maxFileSize),
	}, nil
}
