package toolproto

import "encoding/json"

// Request is one JSON-RPC-shaped tool invocation. ID is echoed back
// verbatim on Response so a host can match responses to requests over
// a single stdio stream; it is opaque to this package.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is one reply to a Request: exactly one of Result or Error
// is set.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result any             `json:"result,omitempty"`
	Error  *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the JSON shape of a failed invocation. Code is the
// errtax.Code that produced it, so a host can branch on category
// (divide by 1000) without parsing Message text.
type ResponseError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Tool    string         `json:"tool,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

func newResponse(id json.RawMessage, result any, err error) Response {
	if err == nil {
		return Response{ID: id, Result: result}
	}
	return Response{ID: id, Error: toResponseError(err)}
}
