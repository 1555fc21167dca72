package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/a3tai/mcp-pdf-forms/internal/config"
	"github.com/a3tai/mcp-pdf-forms/internal/descriptions"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/forms"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// maxListedFiles caps the directory listing in server info text
	maxListedFiles = 10

	shutdownTimeout = 5 * time.Second
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // The tool set is fixed
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	pdfFormInfoTool := mcp.NewTool(
		"pdf_form_info",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_form_info")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfFormInfoTool, s.handlePDFFormInfo)

	pdfListWidgetsTool := mcp.NewTool(
		"pdf_list_widgets",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_list_widgets")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file"),
		),
		mcp.WithNumber("page",
			mcp.Description("Zero-based page index (all pages if omitted)"),
		),
	)
	s.mcpServer.AddTool(pdfListWidgetsTool, s.handlePDFListWidgets)

	pdfValidateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfValidateFileTool, s.handlePDFValidateFile)

	pdfSearchDirectoryTool := mcp.NewTool(
		"pdf_search_directory",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_search_directory")),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
		mcp.WithBoolean("forms_only",
			mcp.Description("Only return files that contain an interactive form"),
		),
	)
	s.mcpServer.AddTool(pdfSearchDirectoryTool, s.handlePDFSearchDirectory)

	pdfServerInfoTool := mcp.NewTool(
		"pdf_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_server_info")),
	)
	s.mcpServer.AddTool(pdfServerInfoTool, s.handlePDFServerInfo)
}

// Handler functions
func (s *Server) handlePDFFormInfo(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFFormInfo(pdf.PDFFormInfoRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPDFFormInfoResult(result)), nil
}

func (s *Server) handlePDFListWidgets(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFListWidgetsRequest{Path: path}
	page, ok, err := optionalPage(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if ok {
		req.Page = &page
	}

	result, err := s.pdfService.PDFListWidgets(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPDFListWidgetsResult(result)), nil
}

func (s *Server) handlePDFValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFValidateFile(pdf.PDFValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages)", result.Path, result.PageCount)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	req := pdf.PDFSearchDirectoryRequest{}
	if dir, ok := args["directory"].(string); ok {
		req.Directory = dir
	}
	if q, ok := args["query"].(string); ok {
		req.Query = q
	}
	switch v := args["forms_only"].(type) {
	case bool:
		req.FormsOnly = v
	case string:
		req.FormsOnly = strings.EqualFold(v, "true")
	}

	result, err := s.pdfService.PDFSearchDirectory(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPDFSearchDirectoryResult(result)), nil
}

func (s *Server) handlePDFServerInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.pdfService.PDFServerInfo(ctx, pdf.PDFServerInfoRequest{}, s.config.ServerName, s.config.Version)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPDFServerInfoResult(result)), nil
}

// optionalPage reads the "page" argument. JSON numbers arrive as float64.
func optionalPage(args map[string]any) (page int, ok bool, err error) {
	raw, found := args["page"]
	if !found || raw == nil {
		return 0, false, nil
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	default:
		return 0, false, fmt.Errorf("page must be a number")
	}

	if f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("page must be a non-negative integer")
	}
	return int(f), true, nil
}

// Formatting functions
func formatPDFFormInfoResult(result *pdf.PDFFormInfoResult) string {
	var b strings.Builder

	b.WriteString("PDF Form Information\n")
	fmt.Fprintf(&b, "File: %s\n", result.Path)
	fmt.Fprintf(&b, "Pages: %d\n", result.PageCount)
	fmt.Fprintf(&b, "Tagged: %t\n", result.IsTagged)

	if result.Encrypted {
		fmt.Fprintf(&b, "Encrypted: yes (%s)\n", result.Permissions)
	}

	if !result.HasForm {
		b.WriteString("Form: none\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Form type: %s\n", result.FormType)
	fmt.Fprintf(&b, "Can fill forms: %t\n", result.CanFillForms)
	fmt.Fprintf(&b, "Needs appearances: %t\n", result.NeedAppearances)
	fmt.Fprintf(&b, "Root fields: %d (%d field nodes)\n", result.RootFieldCount, result.FieldNodeCount)
	fmt.Fprintf(&b, "Widgets: %d\n", result.WidgetCount)

	if len(result.TypeCounts) > 0 {
		b.WriteString("\nWidgets by type:\n")
		for _, name := range forms.FieldTypeNames() {
			if n := result.TypeCounts[name]; n > 0 {
				fmt.Fprintf(&b, "  %s: %d\n", name, n)
			}
		}
		if n := result.TypeCounts[forms.UnknownTypeName]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", forms.UnknownTypeName, n)
		}
	}

	b.WriteString("\nPages:\n")
	for _, p := range result.Pages {
		if p.Error != "" {
			fmt.Fprintf(&b, "  Page %d: error: %s\n", p.PageIndex, p.Error)
			continue
		}
		fmt.Fprintf(&b, "  Page %d: %d widgets of %d annotations\n", p.PageIndex, p.WidgetCount, p.AnnotationCount)
	}

	if result.IssueCount > 0 {
		fmt.Fprintf(&b, "\n⚠️  %d structural issue(s) found; use pdf_list_widgets for details\n", result.IssueCount)
	}

	return b.String()
}

func formatPDFListWidgetsResult(result *pdf.PDFListWidgetsResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Form widgets for: %s\n", result.Path)
	fmt.Fprintf(&b, "Form type: %s\n", result.FormType)
	fmt.Fprintf(&b, "Total widgets: %d\n", result.WidgetCount)

	for _, p := range result.Pages {
		if p.Error != "" {
			fmt.Fprintf(&b, "\nPage %d: unreadable (%s)\n", p.PageIndex, p.Error)
			continue
		}
		fmt.Fprintf(&b, "\nPage %d (%d widgets)\n", p.PageIndex, len(p.Widgets))
		for i, w := range p.Widgets {
			fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, w.FieldName, w.FieldTypeString)
			if w.FieldLabel != "" {
				fmt.Fprintf(&b, "   Label: %s\n", w.FieldLabel)
			}
			fmt.Fprintf(&b, "   Value: %q\n", w.FieldValue)
			if w.ChoiceValues != nil {
				fmt.Fprintf(&b, "   Options: %s\n", strings.Join(w.ChoiceValues, ", "))
			}
			if w.ExportValue != "" {
				fmt.Fprintf(&b, "   Export value: %s (checked: %t)\n", w.ExportValue, w.Checked)
			}
			if w.FieldFlags != 0 {
				fmt.Fprintf(&b, "   Flags: %d\n", w.FieldFlags)
			}
			fmt.Fprintf(&b, "   Rect: [%g %g %g %g]\n", w.Rect.Left, w.Rect.Top, w.Rect.Right, w.Rect.Bottom)
		}
		if p.Issues != nil {
			for _, issue := range p.Issues.Warnings {
				fmt.Fprintf(&b, "   ⚠️  %s\n", issue.Message)
			}
			for _, issue := range p.Issues.Errors {
				fmt.Fprintf(&b, "   ❌ %s\n", issue.Message)
			}
		}
	}

	return b.String()
}

func formatPDFSearchDirectoryResult(result *pdf.PDFSearchDirectoryResult) string {
	if result.TotalCount == 0 {
		text := fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			text += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
		if result.FormsOnly {
			text += " (forms only)"
		}
		return text
	}

	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	if result.FormsOnly {
		text += "Filter: files with interactive forms\n"
	}
	if result.Truncated {
		text += "Note: results were truncated\n"
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func formatPDFServerInfoResult(result *pdf.PDFServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("🌳 Max Field Depth: %d\n", result.MaxFieldDepth)
	text += fmt.Sprintf("🗂️  Form Cache: %d/%d entries, %.0f%% hit rate\n\n",
		result.FormCache.Size, result.FormCache.Capacity, result.FormCache.HitRate)

	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= maxListedFiles {
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-maxListedFiles)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		if result.Truncated {
			text += "   (listing truncated)\n"
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No PDF files found in default directory\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting PDF forms MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over HTTP with server-sent events until ctx is
// cancelled.
func (s *Server) runServerMode(ctx context.Context) error {
	addr := s.config.Address()
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
	)

	log.Printf("Starting PDF forms MCP server on %s", addr)
	log.Printf("PDF directory: %s", s.config.PDFDirectory)

	errCh := make(chan error, 1)
	go func() {
		errCh <- sseServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}
