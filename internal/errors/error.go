package errors

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime Category = "runtime"
	CategoryRender  Category = "render"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File string
	Line int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ArborError is a structured error with a stable code, an optional source
// location and a suggestion on how to fix it.
type ArborError struct {
	// Code is a unique error identifier (e.g., "A001").
	Code string

	// Category is the error type (runtime, render, config, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where the offending call was made, if known.
	Location *Location

	// Context contains surrounding source code lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ArborError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ArborError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error.
func (e *ArborError) WithLocation(file string, line int) *ArborError {
	e.Location = &Location{File: file, Line: line}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithCaller records the location, and its surrounding source lines, of
// the caller skip frames above the function calling WithCaller.
func (e *ArborError) WithCaller(skip int) *ArborError {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return e
	}
	return e.WithLocation(file, line)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ArborError) WithSuggestion(s string) *ArborError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation.
func (e *ArborError) WithDetail(d string) *ArborError {
	e.Detail = d
	return e
}

// WithDetailf replaces the detailed explanation with a formatted string.
func (e *ArborError) WithDetailf(format string, args ...any) *ArborError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *ArborError) Wrap(err error) *ArborError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates an ArborError from a registered error code.
func New(code string) *ArborError {
	template, ok := registry[code]
	if !ok {
		return &ArborError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ArborError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new ArborError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ArborError {
	return &ArborError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an ArborError.
func FromError(err error, code string) *ArborError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*ArborError); ok {
		return ae
	}
	return New(code).Wrap(err)
}
