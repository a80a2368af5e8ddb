package types

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRequest(t *testing.T, body string) *Request {
	t.Helper()
	r := httptest.NewRequest("POST", "/v1/chat/completions", strings.NewReader(body))
	return NewRequest(r, []byte(body), "req-test")
}

func TestRequestModel(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "present",
			body: `{"model":"gpt-4o","messages":[]}`,
			want: "gpt-4o",
		},
		{
			name: "absent",
			body: `{"messages":[]}`,
			want: "",
		},
		{
			name: "invalid json",
			body: `{"model":`,
			want: "",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(t, tt.body)
			if got := req.Model(); got != tt.want {
				t.Errorf("Model() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestWantsStream(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"stream true", `{"stream":true}`, true},
		{"stream false", `{"stream":false}`, false},
		{"stream absent", `{"model":"gpt-4o"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(t, tt.body)
			if got := req.WantsStream(); got != tt.want {
				t.Errorf("WantsStream() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestMaxTokens(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{"present", `{"max_tokens":4096}`, 4096},
		{"absent", `{"model":"gpt-4o"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(t, tt.body)
			if got := req.MaxTokens(); got != tt.want {
				t.Errorf("MaxTokens() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequestPromptText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string contents",
			body: `{"messages":[{"role":"system","content":"be brief"},{"role":"user","content":"hello"}]}`,
			want: "be brief\nhello",
		},
		{
			name: "content blocks",
			body: `{"messages":[{"role":"user","content":[{"type":"text","text":"first"},{"type":"image_url","image_url":{}},{"type":"text","text":"second"}]}]}`,
			want: "first\nsecond",
		},
		{
			name: "legacy prompt",
			body: `{"prompt":"complete me"}`,
			want: "complete me",
		},
		{
			name: "top level system",
			body: `{"system":"rules","messages":[{"role":"user","content":"hi"}]}`,
			want: "hi\nrules",
		},
		{
			name: "no text fields",
			body: `{"model":"gpt-4o"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(t, tt.body)
			if got := req.PromptText(); got != tt.want {
				t.Errorf("PromptText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestClientKey(t *testing.T) {
	t.Run("authorization header wins", func(t *testing.T) {
		req := newTestRequest(t, "{}")
		req.Header.Set("Authorization", "Bearer sk-abc")
		req.Header.Set("x-api-key", "key-xyz")
		if got := req.ClientKey(); got != "Bearer sk-abc" {
			t.Errorf("ClientKey() = %q, want %q", got, "Bearer sk-abc")
		}
	})

	t.Run("x-api-key fallback", func(t *testing.T) {
		req := newTestRequest(t, "{}")
		req.Header.Set("x-api-key", "key-xyz")
		if got := req.ClientKey(); got != "key-xyz" {
			t.Errorf("ClientKey() = %q, want %q", got, "key-xyz")
		}
	})

	t.Run("remote host fallback", func(t *testing.T) {
		req := newTestRequest(t, "{}")
		req.ClientAddr = "10.1.2.3:51234"
		if got := req.ClientKey(); got != "10.1.2.3" {
			t.Errorf("ClientKey() = %q, want %q", got, "10.1.2.3")
		}
	})
}

func TestErrorDetailHTTPStatusCode(t *testing.T) {
	tests := []struct {
		errType string
		want    int
	}{
		{ErrorTypeInvalidRequest, 400},
		{ErrorTypeAuthentication, 401},
		{ErrorTypeNotFound, 404},
		{ErrorTypeRateLimitExceeded, 429},
		{ErrorTypeServerError, 500},
		{ErrorTypeBadGateway, 502},
		{ErrorTypeGatewayTimeout, 504},
		{"unknown", 500},
	}

	for _, tt := range tests {
		t.Run(tt.errType, func(t *testing.T) {
			d := &ErrorDetail{Type: tt.errType}
			if got := d.HTTPStatusCode(); got != tt.want {
				t.Errorf("HTTPStatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
