package errtax

import (
	"errors"
	"testing"
)

func TestNewSetsDefaultRecoverable(t *testing.T) {
	e := New(APIRateLimit, "rate limited", nil)
	if !e.Recoverable {
		t.Fatal("APIRateLimit should default to recoverable")
	}
	if e.Code != APIRateLimit {
		t.Errorf("Code = %v, want APIRateLimit", e.Code)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestWithToolPreservesCodeAndContext(t *testing.T) {
	orig := New(ValidationFailed, "bad input", map[string]any{"path": "$.foo"})
	wrapped := orig.WithTool("regression")

	if wrapped.Code != orig.Code {
		t.Errorf("Code changed: %v != %v", wrapped.Code, orig.Code)
	}
	if wrapped.Context["path"] != "$.foo" {
		t.Errorf("context not preserved: %v", wrapped.Context)
	}
	if wrapped.Tool != "regression" {
		t.Errorf("Tool = %q, want regression", wrapped.Tool)
	}
	// Original is untouched (immutability).
	if orig.Tool != "" {
		t.Errorf("original mutated: Tool = %q", orig.Tool)
	}
}

func TestWithToolDoesNotOverwrite(t *testing.T) {
	e := New(ToolNotFound, "missing", nil).WithTool("first")
	e2 := e.WithTool("second")
	if e2.Tool != "first" {
		t.Errorf("Tool = %q, want first (should not overwrite)", e2.Tool)
	}
}

func TestWithContextDoesNotOverwriteExisting(t *testing.T) {
	e := New(ValidationFailed, "x", map[string]any{"k": "v1"})
	e2 := e.WithContext(map[string]any{"k": "v2", "k2": "v2"})
	if e2.Context["k"] != "v1" {
		t.Errorf("existing context key overwritten: %v", e2.Context["k"])
	}
	if e2.Context["k2"] != "v2" {
		t.Errorf("new context key missing: %v", e2.Context)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	e := New(APIGeneric, "wrapped", nil).WithCause(cause)
	if !errors.Is(e, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestErrorStringIncludesToolWhenSet(t *testing.T) {
	e := ToolExecution(ToolExecutionFailed, "stats.mean", "divide by zero", nil)
	msg := e.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
}
