package mcp

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-pdf-forms/internal/config"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/forms"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/pdftest"
)

// newTestServer creates a server rooted at a temp directory holding
// form.pdf, plain.pdf and notes.txt.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	pdftest.Write(t, dir, "form.pdf", pdftest.Form())
	pdftest.Write(t, dir, "plain.pdf", pdftest.Plain())
	pdftest.Write(t, dir, "notes.txt", []byte("not a pdf"))

	cfg := &config.Config{
		Mode:          config.ModeStdio,
		PDFDirectory:  dir,
		Version:       "1.0.0",
		ServerName:    "test-server",
		MaxFileSize:   1024 * 1024,
		MaxFieldDepth: config.DefaultMaxFieldDepth,
	}
	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.PDFDirectory, forms.Options{MaxFieldDepth: cfg.MaxFieldDepth})
	require.NoError(t, err)

	server, err := NewServer(cfg, pdfService)
	require.NoError(t, err)
	return server, dir
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}

func TestNewServer(t *testing.T) {
	dir := t.TempDir()
	pdfService, err := pdf.NewService(1024*1024, dir, forms.Options{})
	require.NoError(t, err)

	cfg := &config.Config{Mode: config.ModeServer, PDFDirectory: dir, ServerName: "test-server", Version: "1.0.0"}
	server, err := NewServer(cfg, pdfService)
	require.NoError(t, err)
	assert.Same(t, cfg, server.config)
	assert.Same(t, pdfService, server.pdfService)
	assert.NotNil(t, server.mcpServer)

	_, err = NewServer(cfg, nil)
	assert.ErrorContains(t, err, "pdfService cannot be nil")

	_, err = NewServer(nil, pdfService)
	assert.ErrorContains(t, err, "config cannot be nil")
}

func TestServer_HandlePDFFormInfo(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handlePDFFormInfo(context.Background(), callRequest(map[string]any{"path": "form.pdf"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := extractTextFromResult(result)
	assert.Contains(t, text, "Form type: acroform")
	assert.Contains(t, text, "Widgets: 3")
	assert.Contains(t, text, "Text: 1")
	assert.Contains(t, text, "Page 1: 1 widgets of 2 annotations")

	result, err = server.handlePDFFormInfo(context.Background(), callRequest(map[string]any{"path": "plain.pdf"}))
	require.NoError(t, err)
	assert.Contains(t, extractTextFromResult(result), "Form: none")

	result, err = server.handlePDFFormInfo(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestServer_HandlePDFListWidgets(t *testing.T) {
	server, dir := newTestServer(t)

	t.Run("all pages", func(t *testing.T) {
		result, err := server.handlePDFListWidgets(context.Background(),
			callRequest(map[string]any{"path": filepath.Join(dir, "form.pdf")}))
		require.NoError(t, err)
		require.False(t, result.IsError)

		text := extractTextFromResult(result)
		assert.Contains(t, text, "Total widgets: 3")
		assert.Contains(t, text, "1. Name [Text]")
		assert.Contains(t, text, `Value: "Ada"`)
		assert.Contains(t, text, "Options: Cat, Dog")
		assert.Contains(t, text, "Rect: [10 30 110 10]")
	})

	t.Run("single page", func(t *testing.T) {
		result, err := server.handlePDFListWidgets(context.Background(),
			callRequest(map[string]any{"path": "form.pdf", "page": float64(1)}))
		require.NoError(t, err)
		require.False(t, result.IsError)

		text := extractTextFromResult(result)
		assert.Contains(t, text, "Page 1 (1 widgets)")
		assert.NotContains(t, text, "Page 0")
	})

	t.Run("invalid page", func(t *testing.T) {
		for _, page := range []any{float64(-1), 1.5, "one"} {
			result, err := server.handlePDFListWidgets(context.Background(),
				callRequest(map[string]any{"path": "form.pdf", "page": page}))
			require.NoError(t, err)
			assert.True(t, result.IsError, "page %v", page)
		}
	})

	t.Run("page out of range", func(t *testing.T) {
		result, err := server.handlePDFListWidgets(context.Background(),
			callRequest(map[string]any{"path": "form.pdf", "page": float64(9)}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("no form", func(t *testing.T) {
		result, err := server.handlePDFListWidgets(context.Background(),
			callRequest(map[string]any{"path": "plain.pdf"}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, extractTextFromResult(result), "no form")
	})
}

func TestServer_HandlePDFValidateFile(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handlePDFValidateFile(context.Background(), callRequest(map[string]any{"path": "plain.pdf"}))
	require.NoError(t, err)
	assert.Contains(t, extractTextFromResult(result), "is valid and readable (2 pages)")

	result, err = server.handlePDFValidateFile(context.Background(), callRequest(map[string]any{"path": "notes.txt"}))
	require.NoError(t, err)
	assert.Contains(t, extractTextFromResult(result), "PDF validation failed")

	result, err = server.handlePDFValidateFile(context.Background(), callRequest(map[string]any{"path": "/etc/passwd"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestServer_HandlePDFSearchDirectory(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name        string
		args        map[string]any
		contains    []string
		notContains []string
	}{
		{
			name:     "default directory",
			args:     map[string]any{},
			contains: []string{"Found 2 PDF file(s)", "form.pdf", "plain.pdf"},
		},
		{
			name:        "query",
			args:        map[string]any{"query": "plain"},
			contains:    []string{"Found 1 PDF file(s)", "Search query: plain"},
			notContains: []string{"form.pdf"},
		},
		{
			name:        "forms only",
			args:        map[string]any{"forms_only": true},
			contains:    []string{"Found 1 PDF file(s)", "form.pdf", "Filter: files with interactive forms"},
			notContains: []string{"plain.pdf"},
		},
		{
			name:     "forms only as string",
			args:     map[string]any{"forms_only": "true", "query": "plain"},
			contains: []string{"No PDF files found", "(searched for: plain)", "(forms only)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := server.handlePDFSearchDirectory(context.Background(), callRequest(tt.args))
			require.NoError(t, err)
			require.False(t, result.IsError)

			text := extractTextFromResult(result)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, text, s)
			}
		})
	}

	result, err := server.handlePDFSearchDirectory(context.Background(), callRequest(map[string]any{"directory": "/"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestServer_HandlePDFServerInfo(t *testing.T) {
	server, dir := newTestServer(t)

	result, err := server.handlePDFServerInfo(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := extractTextFromResult(result)
	assert.Contains(t, text, "test-server v1.0.0")
	assert.Contains(t, text, dir)
	assert.Contains(t, text, "2 PDF files found")
	assert.Contains(t, text, "• pdf_list_widgets")
	assert.Contains(t, text, "Max Field Depth: 32")
}

func TestOptionalPage(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    int
		wantOK  bool
		wantErr bool
	}{
		{name: "missing", args: map[string]any{}},
		{name: "null", args: map[string]any{"page": nil}},
		{name: "float", args: map[string]any{"page": float64(3)}, want: 3, wantOK: true},
		{name: "int", args: map[string]any{"page": 2}, want: 2, wantOK: true},
		{name: "negative", args: map[string]any{"page": float64(-2)}, wantErr: true},
		{name: "fraction", args: map[string]any{"page": 0.5}, wantErr: true},
		{name: "huge", args: map[string]any{"page": 1e20}, wantErr: true},
		{name: "above int32", args: map[string]any{"page": float64(math.MaxInt32) + 1}, wantErr: true},
		{name: "largest", args: map[string]any{"page": float64(math.MaxInt32)}, want: math.MaxInt32, wantOK: true},
		{name: "infinity", args: map[string]any{"page": math.Inf(1)}, wantErr: true},
		{name: "nan", args: map[string]any{"page": math.NaN()}, wantErr: true},
		{name: "string", args: map[string]any{"page": "1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok, err := optionalPage(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, page)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestFormatPDFListWidgetsResult_UnreadablePage(t *testing.T) {
	text := formatPDFListWidgetsResult(&pdf.PDFListWidgetsResult{
		Path:     "short.pdf",
		FormType: forms.FormTypeAcroForm,
		Pages: []pdf.PageWidgets{
			{PageIndex: 0, Widgets: []forms.Widget{{FieldName: "Only", FieldTypeString: "Text"}}},
			{PageIndex: 1, Widgets: []forms.Widget{}, Error: "page dictionary missing"},
		},
		WidgetCount: 1,
	})

	assert.Contains(t, text, "Page 0 (1 widgets)")
	assert.Contains(t, text, "1. Only [Text]")
	assert.Contains(t, text, "Page 1: unreadable (page dictionary missing)")
}
