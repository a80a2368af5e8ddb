package types

import (
	"net"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Request is the provider-agnostic representation of an inbound call.
//
// The raw body is captured once at ingress; structured access goes through
// JSON(), which parses lazily and caches the result. RequestID is assigned
// once at ingress and is immutable; it correlates every log and audit entry
// for the request.
type Request struct {
	// Method is the HTTP method.
	Method string

	// Path is the inbound URL path, including the provider prefix.
	Path string

	// Query is the raw query string, forwarded verbatim.
	Query string

	// Header is the inbound header set (case-insensitive, multi-value).
	Header http.Header

	// Body is the raw request body. Empty for bodyless methods.
	Body []byte

	// RequestID is the UUID assigned at ingress.
	RequestID string

	// ClientAddr is the remote address of the client connection.
	ClientAddr string

	parsed   gjson.Result
	didParse bool
}

// NewRequest builds a Request from an already-read body. The caller is
// responsible for reading and closing r.Body.
func NewRequest(r *http.Request, body []byte, requestID string) *Request {
	return &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.RawQuery,
		Header:     r.Header.Clone(),
		Body:       body,
		RequestID:  requestID,
		ClientAddr: r.RemoteAddr,
	}
}

// JSON returns the parsed request body. The first call parses; subsequent
// calls return the cached result. An unparsable or empty body yields a
// zero Result whose Exists() is false for every path.
func (r *Request) JSON() gjson.Result {
	if !r.didParse {
		if gjson.ValidBytes(r.Body) {
			r.parsed = gjson.ParseBytes(r.Body)
		}
		r.didParse = true
	}
	return r.parsed
}

// Model returns the model field of the request body, or "".
func (r *Request) Model() string {
	return r.JSON().Get("model").String()
}

// WantsStream reports whether the request body asks for a streamed response.
// The relay engine decides the actual delivery mode from the upstream
// response, not from this flag.
func (r *Request) WantsStream() bool {
	return r.JSON().Get("stream").Bool()
}

// MaxTokens returns the max_tokens field of the request body, or 0 when the
// field is absent.
func (r *Request) MaxTokens() int64 {
	return r.JSON().Get("max_tokens").Int()
}

// PromptText returns the concatenated user-visible text of the request:
// every message content (including multimodal text parts), the bare prompt
// field for legacy completions, and the top-level system field. Used by the
// forbidden-instruction filter and the prompt-size estimator.
func (r *Request) PromptText() string {
	var sb strings.Builder
	body := r.JSON()

	body.Get("messages").ForEach(func(_, msg gjson.Result) bool {
		appendContent(&sb, msg.Get("content"))
		return true
	})

	appendContent(&sb, body.Get("prompt"))
	appendContent(&sb, body.Get("system"))

	return sb.String()
}

// appendContent appends the text of a content value, which may be a plain
// string or an array of typed content blocks.
func appendContent(sb *strings.Builder, content gjson.Result) {
	switch {
	case content.Type == gjson.String:
		if sb.Len() > 0 && content.String() != "" {
			sb.WriteByte('\n')
		}
		sb.WriteString(content.String())
	case content.IsArray():
		content.ForEach(func(_, block gjson.Result) bool {
			if block.Get("type").String() == "text" {
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
				sb.WriteString(block.Get("text").String())
			}
			return true
		})
	}
}

// ClientKey returns the identity used for rate limiting: the caller's
// credential when present, otherwise the client host address.
func (r *Request) ClientKey() string {
	if v := r.Header.Get("Authorization"); v != "" {
		return v
	}
	if v := r.Header.Get("x-api-key"); v != "" {
		return v
	}
	host, _, err := net.SplitHostPort(r.ClientAddr)
	if err != nil {
		return r.ClientAddr
	}
	return host
}
