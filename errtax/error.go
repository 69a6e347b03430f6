package errtax

import (
	"fmt"
	"time"
)

// Error is an AnalyticalError: a categorized, structured error carrying
// enough information for the resilience layer to decide retry without
// string inspection.
type Error struct {
	Code        Code
	Message     string
	Context     map[string]any
	Recoverable bool
	Tool        string
	CreatedAt   time.Time

	// HTTPStatus, Endpoint are populated for External-API errors.
	HTTPStatus int
	Endpoint   string

	cause error
}

// New constructs an AnalyticalError from a code, message, and optional
// context. Recoverability is taken from the code's default; callers may
// set the exported Recoverable field afterwards to override it.
func New(code Code, message string, ctx map[string]any) *Error {
	return &Error{
		Code:        code,
		Message:     message,
		Context:     cloneContext(ctx),
		Recoverable: defaultRecoverable(code),
		CreatedAt:   now(),
	}
}

// now is a seam for deterministic tests; production always uses time.Now.
var now = time.Now

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("[%s] %s: %s (tool=%s)", e.Code, e.Message, e.Code.String(), e.Tool)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithTool returns a copy of e with the tool name attached. Per spec §4.1,
// wrapping an AnalyticalError preserves its code and context; only the
// tool name and wrapping context may be appended.
func (e *Error) WithTool(tool string) *Error {
	cp := e.clone()
	if cp.Tool == "" {
		cp.Tool = tool
	}
	return cp
}

// WithContext returns a copy of e with additional context keys merged in.
// Existing keys are not overwritten.
func (e *Error) WithContext(extra map[string]any) *Error {
	cp := e.clone()
	for k, v := range extra {
		if _, exists := cp.Context[k]; !exists {
			cp.Context[k] = v
		}
	}
	return cp
}

// WithCause returns a copy of e wrapping the given underlying error.
func (e *Error) WithCause(cause error) *Error {
	cp := e.clone()
	cp.cause = cause
	return cp
}

func (e *Error) clone() *Error {
	cp := *e
	cp.Context = cloneContext(e.Context)
	return &cp
}

func cloneContext(ctx map[string]any) map[string]any {
	if ctx == nil {
		return map[string]any{}
	}
	cp := make(map[string]any, len(ctx))
	for k, v := range ctx {
		cp[k] = v
	}
	return cp
}

// Validation constructs a Validation-category error (1xxx).
func Validation(message string, ctx map[string]any) *Error {
	return New(ValidationFailed, message, ctx)
}

// API constructs an External-API-category error (2xxx) with HTTP status
// and endpoint context.
func API(code Code, message string, httpStatus int, endpoint string, ctx map[string]any) *Error {
	e := New(code, message, ctx)
	e.HTTPStatus = httpStatus
	e.Endpoint = endpoint
	return e
}

// DataProcessing constructs a Processing-category error (3xxx).
func DataProcessing(code Code, message string, ctx map[string]any) *Error {
	return New(code, message, ctx)
}

// Configuration constructs a Configuration-category error (4xxx).
func Configuration(message string, ctx map[string]any) *Error {
	return New(ConfigInvalid, message, ctx)
}

// ToolExecution constructs a Tool-Execution-category error (5xxx) for the
// named tool.
func ToolExecution(code Code, tool, message string, ctx map[string]any) *Error {
	e := New(code, message, ctx)
	e.Tool = tool
	return e
}
