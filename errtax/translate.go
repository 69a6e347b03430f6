package errtax

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Translate converts an arbitrary thrown value into an *Error. Translation
// is total: every input, including nil, produces a non-nil *Error (nil
// maps to a generic Processing failure, which callers should not normally
// encounter).
//
// If v is already an *Error, it is returned with its code and context
// preserved unchanged — translate(translate(x)) == translate(x), per
// spec §8.
//
// For plain errors, message-pattern heuristics (timeout, rate limit, auth,
// HTTP status class) provide sensible External-API code defaults. These
// heuristics exist only to classify *unrecognized* errors arriving from
// opaque external collaborators (§1); once classified, all downstream
// decisions use the code and Recoverable flag, never the original text.
func Translate(v any) *Error {
	switch val := v.(type) {
	case nil:
		return New(ProcessingFailed, "nil error", nil)
	case *Error:
		return val
	case error:
		return translateError(val)
	case string:
		return New(ProcessingFailed, val, nil)
	default:
		return New(ProcessingFailed, "unrecognized error value", map[string]any{
			"original_type": fmt.Sprintf("%T", val),
		})
	}
}

func translateError(err error) *Error {
	if ae, ok := AsError(err); ok {
		return ae
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(APITimeout, err.Error(), nil).WithCause(err)
	}
	if errors.Is(err, context.Canceled) {
		return New(APITimeout, err.Error(), nil).WithCause(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return New(APITimeout, err.Error(), nil).WithCause(err)
	}

	msg := strings.ToLower(err.Error())

	switch {
	case containsAny(msg, "rate limit", "too many requests", "429"):
		return New(APIRateLimit, err.Error(), nil).WithCause(err)
	case containsAny(msg, "unauthorized", "forbidden", "invalid api key", "auth failed", "401", "403"):
		return New(APIAuth, err.Error(), nil).WithCause(err)
	case containsAny(msg, "timeout", "timed out", "deadline exceeded"):
		return New(APITimeout, err.Error(), nil).WithCause(err)
	case containsAny(msg, "service unavailable", "bad gateway", "502", "503", "504"):
		return New(APIServiceUnavailable, err.Error(), nil).WithCause(err)
	case containsAny(msg, "invalid response", "malformed response", "decode", "unmarshal"):
		return New(APIInvalidResponse, err.Error(), nil).WithCause(err)
	case httpStatusClass(msg) == 4:
		return New(ValidationFailed, err.Error(), nil).WithCause(err)
	case httpStatusClass(msg) == 5:
		return New(APIGeneric, err.Error(), nil).WithCause(err)
	default:
		return New(ProcessingFailed, err.Error(), nil).WithCause(err)
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// httpStatusClass extracts a leading "NNN " style HTTP status class (4 or
// 5) from a message if present, else 0.
func httpStatusClass(msg string) int {
	fields := strings.Fields(msg)
	for _, f := range fields {
		f = strings.Trim(f, ":,()")
		if len(f) == 3 {
			if n, err := strconv.Atoi(f); err == nil && n >= 400 && n < 600 {
				return n / 100
			}
		}
	}
	return 0
}

