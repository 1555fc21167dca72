package errors

import (
	"fmt"
	"time"
)

// PDFError describes a failure while opening or decoding a PDF form, with
// enough location context to point at the offending page or object.
type PDFError struct {
	Type        ErrorType `json:"type"`
	Message     string    `json:"message"`
	Context     string    `json:"context,omitempty"`
	ObjectNum   int       `json:"object_num,omitempty"`
	Recoverable bool      `json:"recoverable"`
	Timestamp   time.Time `json:"timestamp"`
	FilePath    string    `json:"file_path,omitempty"`
	PageIndex   int       `json:"page_index,omitempty"`
	Cause       error     `json:"-"`
}

// ErrorType represents the categories of form reading errors
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeOpen
	ErrorTypeIndexOutOfRange
	ErrorTypeNoFormEnvironment
	ErrorTypeNotImplemented
	ErrorTypeDocumentClosed
	ErrorTypeMalformedPage
	ErrorTypeInvalidAnnotation
	ErrorTypeInvalidForm
	ErrorTypeCircularReference
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity int

const (
	SeverityInfo ErrorSeverity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

// Sentinels for errors.Is. A *PDFError matches a sentinel when the types agree.
var (
	ErrOpen              = &PDFError{Type: ErrorTypeOpen, Message: "cannot open document"}
	ErrIndexOutOfRange   = &PDFError{Type: ErrorTypeIndexOutOfRange, Message: "page index out of range"}
	ErrNoFormEnvironment = &PDFError{Type: ErrorTypeNoFormEnvironment, Message: "document has no form"}
	ErrNotImplemented    = &PDFError{Type: ErrorTypeNotImplemented, Message: "not implemented"}
	ErrDocumentClosed    = &PDFError{Type: ErrorTypeDocumentClosed, Message: "document is closed"}
	ErrCircularReference = &PDFError{Type: ErrorTypeCircularReference, Message: "circular field reference"}
)

// Error implements the error interface
func (e *PDFError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
	if e.Context != "" {
		msg += ": " + e.Context
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *PDFError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *PDFError of the same type.
func (e *PDFError) Is(target error) bool {
	t, ok := target.(*PDFError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeOpen:
		return "OPEN"
	case ErrorTypeIndexOutOfRange:
		return "INDEX_OUT_OF_RANGE"
	case ErrorTypeNoFormEnvironment:
		return "NO_FORM_ENVIRONMENT"
	case ErrorTypeNotImplemented:
		return "NOT_IMPLEMENTED"
	case ErrorTypeDocumentClosed:
		return "DOCUMENT_CLOSED"
	case ErrorTypeMalformedPage:
		return "MALFORMED_PAGE"
	case ErrorTypeInvalidAnnotation:
		return "INVALID_ANNOTATION"
	case ErrorTypeInvalidForm:
		return "INVALID_FORM"
	case ErrorTypeCircularReference:
		return "CIRCULAR_REFERENCE"
	default:
		return "UNKNOWN"
	}
}

// GetSeverity returns the severity level for a given error type
func (et ErrorType) GetSeverity() ErrorSeverity {
	switch et {
	case ErrorTypeOpen:
		return SeverityFatal
	case ErrorTypeIndexOutOfRange, ErrorTypeNoFormEnvironment, ErrorTypeNotImplemented,
		ErrorTypeDocumentClosed, ErrorTypeMalformedPage:
		return SeverityError
	case ErrorTypeInvalidAnnotation, ErrorTypeInvalidForm, ErrorTypeCircularReference:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// IsRecoverable determines if an error type is generally recoverable
func (et ErrorType) IsRecoverable() bool {
	switch et {
	case ErrorTypeOpen, ErrorTypeDocumentClosed, ErrorTypeNotImplemented:
		return false
	case ErrorTypeIndexOutOfRange:
		return false // caller bug
	case ErrorTypeNoFormEnvironment:
		return true // caller may treat it as an empty result
	case ErrorTypeMalformedPage, ErrorTypeInvalidAnnotation, ErrorTypeInvalidForm, ErrorTypeCircularReference:
		return true // decoding continues with placeholders
	default:
		return false
	}
}

// NewPDFError creates a new PDFError
func NewPDFError(errorType ErrorType, message string) *PDFError {
	return &PDFError{
		Type:        errorType,
		Message:     message,
		Recoverable: errorType.IsRecoverable(),
		Timestamp:   time.Now(),
	}
}

// NewPDFErrorWithContext creates a new PDFError with additional context
func NewPDFErrorWithContext(errorType ErrorType, message, context string) *PDFError {
	e := NewPDFError(errorType, message)
	e.Context = context
	return e
}

// WrapError wraps err as a PDFError of the given type, keeping it as the cause.
func WrapError(errorType ErrorType, message string, err error) *PDFError {
	e := NewPDFError(errorType, message)
	e.Cause = err
	return e
}

// WithContext adds context to an existing PDFError
func (e *PDFError) WithContext(context string) *PDFError {
	e.Context = context
	return e
}

// WithObject records the object number the error refers to
func (e *PDFError) WithObject(objNum int) *PDFError {
	e.ObjectNum = objNum
	return e
}

// WithFile adds file path information to an existing PDFError
func (e *PDFError) WithFile(filePath string) *PDFError {
	e.FilePath = filePath
	return e
}

// WithPage adds the zero-based page index to an existing PDFError
func (e *PDFError) WithPage(pageIndex int) *PDFError {
	e.PageIndex = pageIndex
	return e
}

// GetSeverity returns the severity of this specific error
func (e *PDFError) GetSeverity() ErrorSeverity {
	return e.Type.GetSeverity()
}

// IsFatal returns true if this error aborts the operation that raised it
func (e *PDFError) IsFatal() bool {
	return e.GetSeverity() == SeverityFatal
}

// ErrorCollection gathers the non-fatal issues met while decoding a page
type ErrorCollection struct {
	Errors   []*PDFError `json:"errors"`
	Warnings []*PDFError `json:"warnings"`
	FilePath string      `json:"file_path,omitempty"`
}

// NewErrorCollection creates a new error collection
func NewErrorCollection(filePath string) *ErrorCollection {
	return &ErrorCollection{
		Errors:   make([]*PDFError, 0),
		Warnings: make([]*PDFError, 0),
		FilePath: filePath,
	}
}

// Add adds an error to the appropriate collection based on severity
func (ec *ErrorCollection) Add(err *PDFError) {
	if err.FilePath == "" && ec.FilePath != "" {
		err.FilePath = ec.FilePath
	}

	severity := err.GetSeverity()
	if severity == SeverityWarning || severity == SeverityInfo {
		ec.Warnings = append(ec.Warnings, err)
	} else {
		ec.Errors = append(ec.Errors, err)
	}
}

// Count returns the total number of errors and warnings. A nil collection
// is empty.
func (ec *ErrorCollection) Count() (errors, warnings int) {
	if ec == nil {
		return 0, 0
	}
	return len(ec.Errors), len(ec.Warnings)
}

// Empty reports whether nothing was collected
func (ec *ErrorCollection) Empty() bool {
	e, w := ec.Count()
	return e == 0 && w == 0
}

// Summary returns a text summary of all errors and warnings
func (ec *ErrorCollection) Summary() string {
	errorCount, warningCount := ec.Count()
	if errorCount == 0 && warningCount == 0 {
		return "No errors or warnings"
	}
	return fmt.Sprintf("Found %d error(s) and %d warning(s)", errorCount, warningCount)
}
