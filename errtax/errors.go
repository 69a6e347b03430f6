package errtax

import "errors"

// Sentinel errors for the taxonomy package's own failure modes. These are
// intentionally plain stdlib errors, not *Error: they describe misuse of
// this package's API itself, not a recoverable business failure.
var (
	// ErrUnknownCode reports an unrecognized error-code identifier. No
	// function in this package returns it: CodeFromString signals an
	// unknown identifier with ok=false and a ToolExecutionFailed fallback.
	ErrUnknownCode = errors.New("errtax: unknown error code")
)
