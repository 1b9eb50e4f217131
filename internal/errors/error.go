package errors

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"os"
)

// Category groups error codes.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryConfig   Category = "config"
	CategoryDocument Category = "document"
	CategoryCLI      Category = "cli"
)

// Location is a position in a source document.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns "file:line:column", omitting unknown parts.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Line == 0 {
		return l.File
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is a coded error with optional location, hint and example.
type Error struct {
	// Code is the registered identifier (e.g. "E120").
	Code string

	Category Category

	// Message is a short description.
	Message string

	// Detail explains the error in full sentences.
	Detail string

	Location *Location

	// Context holds the source lines around Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows a corrected snippet.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Location != nil {
		msg = e.Location.String() + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithLocation records the document position and loads the surrounding lines
// if the file is readable.
func (e *Error) WithLocation(file string, line, column int) *Error {
	e.Location = &Location{File: file, Line: line, Column: column}
	if file != "" && line > 0 {
		e.Context = readContextLines(file, line, 5)
	}
	return e
}

// WithSuggestion sets the fix hint.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithSuggestionf sets the fix hint from a format string.
func (e *Error) WithSuggestionf(format string, args ...any) *Error {
	e.Suggestion = fmt.Sprintf(format, args...)
	return e
}

// WithExample sets the example snippet.
func (e *Error) WithExample(ex string) *Error {
	e.Example = ex
	return e
}

// WithDetail replaces the registered explanation.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithContext replaces the source lines shown around the location.
func (e *Error) WithContext(lines []string) *Error {
	e.Context = lines
	return e
}

// Wrap sets the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// readContextLines returns up to size lines centred on target.
func readContextLines(filename string, target, size int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	start := target - size/2
	end := target + size/2

	var lines []string
	scanner := bufio.NewScanner(file)
	for n := 1; scanner.Scan(); n++ {
		if n > end {
			break
		}
		if n >= start {
			lines = append(lines, scanner.Text())
		}
	}
	return lines
}

// contextStart returns the line number of the first context line.
func (e *Error) contextStart() int {
	start := e.Location.Line - 5/2
	if start < 1 {
		start = 1
	}
	return start
}

// New creates an Error from a registered code.
func New(code string) *Error {
	tmpl, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: tmpl.Category,
		Message:  tmpl.Message,
		Detail:   tmpl.Detail,
	}
}

// Newf creates an uncoded Error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns err as an *Error, wrapping it under code if it is not
// already one.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &Error{Code: code})
}
