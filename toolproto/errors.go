package toolproto

import "github.com/jonwraymond/toolguard/errtax"

// toResponseError translates any error surfacing from a Dispatch call
// into the wire error shape, running it through errtax.Translate
// first so a non-*errtax.Error (a panic recovery, a raw stdlib error)
// still gets a stable numeric code instead of falling back to a
// generic message.
func toResponseError(err error) *ResponseError {
	ae := errtax.Translate(err)
	return &ResponseError{
		Code:    int(ae.Code),
		Message: ae.Message,
		Tool:    ae.Tool,
		Context: ae.Context,
	}
}
