package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the invoking pipeline. Match them with errors.Is.
var (
	// ErrSpecParse marks a spec document that is not valid structured config.
	ErrSpecParse = errors.New("spec parse error")
	// ErrMalformedSpec marks a test case record with the wrong shape.
	ErrMalformedSpec = errors.New("malformed spec")
)

// GenError is the base error type with context.
type GenError struct {
	Phase      string // "config", "scan", "parse", "convert", "template", "write", "check"
	File       string
	Line       int
	Index      int    // 0-based test case index within File, -1 when not case-specific
	Case       string // test case name, if known
	Message    string
	Suggestion string
	Kind       error
	Cause      error
}

func (e *GenError) Error() string {
	s := fmt.Sprintf("[%s]", e.Phase)
	if e.Kind != nil {
		s += fmt.Sprintf(" %v:", e.Kind)
	}
	if e.File != "" {
		s += fmt.Sprintf(" %s", e.File)
	}
	if e.Line > 0 {
		s += fmt.Sprintf(":%d", e.Line)
	}
	if e.Index >= 0 {
		s += fmt.Sprintf(" test #%d", e.Index)
		if e.Case != "" {
			s += fmt.Sprintf(" (%q)", e.Case)
		}
	}
	s += fmt.Sprintf(": %s", e.Message)
	if e.Cause != nil {
		s += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Suggestion != "" {
		s += fmt.Sprintf(" (hint: %s)", e.Suggestion)
	}
	return s
}

func (e *GenError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the error kind of e.
func (e *GenError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewError creates a new GenError that is not tied to a test case.
func NewError(phase, file string, line int, message string, cause error) *GenError {
	return &GenError{
		Phase:   phase,
		File:    file,
		Line:    line,
		Index:   -1,
		Message: message,
		Cause:   cause,
	}
}

// NewErrorWithSuggestion creates a GenError carrying a hint for the user.
func NewErrorWithSuggestion(phase, file string, line int, message, suggestion string, cause error) *GenError {
	e := NewError(phase, file, line, message, cause)
	e.Suggestion = suggestion
	return e
}

// NewSpecParseError reports a document that could not be decoded.
func NewSpecParseError(file string, line int, cause error) *GenError {
	e := NewError("parse", file, line, "failed to parse spec document", cause)
	e.Kind = ErrSpecParse
	return e
}

// NewMalformedSpec reports a test case record that violates the required shape.
// index is -1 when the problem is at document level.
func NewMalformedSpec(file string, index int, name, message string) *GenError {
	return &GenError{
		Phase:   "convert",
		File:    file,
		Index:   index,
		Case:    name,
		Message: message,
		Kind:    ErrMalformedSpec,
	}
}
