package pdf

import (
	"context"
	"fmt"

	"github.com/a3tai/mcp-pdf-forms/internal/pdf/forms"
	"github.com/a3tai/mcp-pdf-forms/internal/pdf/security"
)

// Service handles PDF form operations. Every file path is confined to the
// configured directory and size-checked before it is opened.
type Service struct {
	maxFileSize   int64
	maxFieldDepth int
	validator     *Validator
	reader        *FormReader
	search        *Search
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service rooted at configuredDirectory. opts
// are used for every document the service opens.
func NewService(maxFileSize int64, configuredDirectory string, opts forms.Options) (*Service, error) {
	if maxFileSize <= 0 {
		return nil, fmt.Errorf("maxFileSize must be greater than 0")
	}

	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	depth := opts.MaxFieldDepth
	if depth <= 0 {
		depth = forms.DefaultMaxFieldDepth
	}

	validator := NewValidator(maxFileSize)
	reader := NewFormReader(opts)

	return &Service{
		maxFileSize:   maxFileSize,
		maxFieldDepth: depth,
		validator:     validator,
		reader:        reader,
		search:        NewSearch(validator, reader),
		pathValidator: pathValidator,
	}, nil
}

// resolveFile confines path and runs the stat-level file checks.
func (s *Service) resolveFile(path string) (string, error) {
	resolved, err := s.pathValidator.ResolvePath(path)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.validator.CheckFile(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

// PDFFormInfo returns the form overview of a PDF file
func (s *Service) PDFFormInfo(req PDFFormInfoRequest) (*PDFFormInfoResult, error) {
	path, err := s.resolveFile(req.Path)
	if err != nil {
		return nil, err
	}
	return s.reader.FormInfo(path)
}

// PDFListWidgets decodes the form widgets of a PDF file
func (s *Service) PDFListWidgets(req PDFListWidgetsRequest) (*PDFListWidgetsResult, error) {
	path, err := s.resolveFile(req.Path)
	if err != nil {
		return nil, err
	}
	return s.reader.ListWidgets(path, req.Page)
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	path, err := s.pathValidator.ResolvePath(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	result, err := s.validator.ValidateFile(PDFValidateFileRequest{Path: path})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFSearchDirectory searches for PDF files in a directory
func (s *Service) PDFSearchDirectory(ctx context.Context, req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	dir, err := s.pathValidator.ValidateDirectory(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Directory = dir

	return s.search.SearchDirectory(ctx, req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// GetConfiguredDirectory returns the directory all paths are confined to
func (s *Service) GetConfiguredDirectory() string {
	return s.pathValidator.GetConfiguredDirectory()
}
