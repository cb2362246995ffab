package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	"rustai/internal/config"
	"rustai/internal/docgen"
	"rustai/internal/scan"
	"rustai/internal/symbols"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConstructNotFound indicates no construct of the requested kind encloses the cursor
	ConstructNotFound ErrorCode = "CONSTRUCT_NOT_FOUND"
	// OwnerUnresolvable indicates a construct was found but its name could not be read
	OwnerUnresolvable ErrorCode = "OWNER_UNRESOLVABLE"
	// ScanLimitExceeded indicates a scan examined more lines than allowed
	ScanLimitExceeded ErrorCode = "SCAN_LIMIT_EXCEEDED"
	// GenerationFailed indicates the text generator returned an error or nothing usable
	GenerationFailed ErrorCode = "GENERATION_FAILED"
	// GeneratorNotConfigured indicates no API key or model is configured
	GeneratorNotConfigured ErrorCode = "GENERATOR_NOT_CONFIGURED"
	// ParserUnavailable indicates tree-sitter is not compiled in
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// FileNotFound indicates the source file does not exist
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// InvalidArgument indicates a bad command-line argument
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// SetEnv suggests setting an environment variable
	SetEnv FixActionType = "set-env"
	// EditConfig suggests editing the configuration file
	EditConfig FixActionType = "edit-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type" yaml:"type"`
	Command     string        `json:"command,omitempty" yaml:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty" yaml:"safe,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// RustaiError represents an error with code, message, and suggestions
type RustaiError struct {
	Code           ErrorCode   `json:"code" yaml:"code"`
	Message        string      `json:"message" yaml:"message"`
	Details        interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty" yaml:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewRustaiError creates a new RustaiError. When suggestedFixes is nil the
// defaults for the code are used.
func NewRustaiError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *RustaiError {
	if suggestedFixes == nil {
		suggestedFixes = GetSuggestedFixes(code)
	}
	return &RustaiError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *RustaiError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *RustaiError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *RustaiError) WithDetails(details interface{}) *RustaiError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	GeneratorNotConfigured: {
		{
			Type:        SetEnv,
			Command:     "export OPENAI_API_KEY=...",
			Description: "Set the API key variable named by generation.apiKeyEnv",
		},
		{
			Type:        RunCommand,
			Command:     "rustai config show",
			Safe:        true,
			Description: "Check the effective generation settings",
		},
	},
	ScanLimitExceeded: {
		{
			Type:        SetEnv,
			Command:     "export RUSTAI_SCAN_MAXLINES=0",
			Description: "Raise or disable the per-scan line limit",
		},
	},
	ConfigInvalid: {
		{
			Type:        EditConfig,
			Command:     ".rustai/config.json",
			Description: "Fix the field named in the error",
		},
	},
	ParserUnavailable: {
		{
			Type:        RunCommand,
			Command:     "CGO_ENABLED=1 go install ./cmd/rustai",
			Safe:        true,
			Description: "Rebuild with CGO to enable tree-sitter",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}

// FromError maps an error from the scanner, generator, config or file system
// to a RustaiError. A RustaiError anywhere in the chain is returned as is.
func FromError(err error) *RustaiError {
	if err == nil {
		return nil
	}

	var re *RustaiError
	if stderrors.As(err, &re) {
		return re
	}

	var cfgErr *config.ConfigError
	switch {
	case stderrors.Is(err, scan.ErrNotFound):
		return NewRustaiError(ConstructNotFound, "no matching construct at the cursor", err, nil)
	case stderrors.Is(err, scan.ErrUnresolvable):
		return NewRustaiError(OwnerUnresolvable, "construct has no usable name", err, nil)
	case stderrors.Is(err, scan.ErrScanLimitExceeded):
		return NewRustaiError(ScanLimitExceeded, "scan stopped at the line limit", err, nil)
	case stderrors.Is(err, docgen.ErrNotConfigured):
		return NewRustaiError(GeneratorNotConfigured, "doc comment generator is not configured", err, nil)
	case stderrors.Is(err, docgen.ErrGenerationFailed):
		return NewRustaiError(GenerationFailed, "doc comment generation failed", err, nil)
	case stderrors.Is(err, symbols.ErrNoCGO):
		return NewRustaiError(ParserUnavailable, "tree-sitter is not available in this build", err, nil)
	case stderrors.As(err, &cfgErr):
		return NewRustaiError(ConfigInvalid, "invalid configuration", err, nil).WithDetails(map[string]string{"field": cfgErr.Field})
	case stderrors.Is(err, fs.ErrNotExist):
		return NewRustaiError(FileNotFound, "file not found", err, nil)
	default:
		return NewRustaiError(InternalError, "unexpected error", err, nil)
	}
}
