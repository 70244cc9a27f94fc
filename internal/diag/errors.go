package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind uint8

const (
	// KindFormat is the base kind.
	KindFormat Kind = iota
	// KindParse marks structurally malformed input.
	KindParse
	// KindConfig marks unreadable or invalid configuration.
	KindConfig
	// KindIO marks file system failures in the driver layer.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindParse:
		return "parse"
	case KindConfig:
		return "config"
	case KindIO:
		return "io"
	}
	return "unknown"
}

var (
	// ErrFormat is matched by every *Error.
	ErrFormat = errors.New("format error")
	// ErrParse is matched by parse errors.
	ErrParse = errors.New("parse error")
	// ErrConfig is matched by configuration errors.
	ErrConfig = errors.New("config error")
	// ErrIO is matched by driver level file errors.
	ErrIO = errors.New("io error")
)

// Error is the single error type produced by the formatter packages.
type Error struct {
	Kind    Kind
	Code    Code
	Path    string
	Line    int // 1-based, 0 when unknown
	Message string
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
		}
		sb.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line)
	}
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFormat:
		return true
	case ErrParse:
		return e.Kind == KindParse
	case ErrConfig:
		return e.Kind == KindConfig
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

// WithPath returns a copy of e bound to path.
func (e *Error) WithPath(path string) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Path = path
	return &cp
}

// NewParse builds a parse error located at line.
func NewParse(code Code, line int, format string, args ...any) *Error {
	return &Error{
		Kind:    KindParse,
		Code:    code,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewConfig builds a configuration error wrapping cause (may be nil).
func NewConfig(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindConfig,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// NewIO builds a file system error for path.
func NewIO(code Code, path string, cause error) *Error {
	return &Error{
		Kind:    KindIO,
		Code:    code,
		Path:    path,
		Message: code.Title(),
		Err:     cause,
	}
}

// CodeOf extracts the Code of err, UnknownCode when err is not an *Error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return UnknownCode
}
