package audit

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

var testSensitiveKeys = []string{
	"authorization", "x-api-key", "api-key", "api_key", "token", "secret",
}

func TestRedactHeaders(t *testing.T) {
	r := NewRedactor(testSensitiveKeys, false)

	h := http.Header{}
	h.Set("Authorization", "Bearer sk-secret")
	h.Set("X-Api-Key", "key-123")
	h.Set("Content-Type", "application/json")
	h.Add("Accept", "application/json")
	h.Add("Accept", "text/event-stream")

	out := r.Headers(h)
	if out["Authorization"] != Mask {
		t.Errorf("Authorization = %q, want mask", out["Authorization"])
	}
	if out["X-Api-Key"] != Mask {
		t.Errorf("X-Api-Key = %q, want mask", out["X-Api-Key"])
	}
	if out["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, should not be masked", out["Content-Type"])
	}
	if out["Accept"] != "application/json, text/event-stream" {
		t.Errorf("Accept = %q, multi-value join broken", out["Accept"])
	}
}

func TestRedactBodySensitiveFields(t *testing.T) {
	r := NewRedactor(testSensitiveKeys, true)

	body := `{"model":"gpt-4o","api_key":"sk-abc","nested":{"token":"tok-1","ok":"visible"},"list":[{"secret":"s3"}]}`
	out := r.Body([]byte(body))

	parsed := gjson.Parse(out)
	if got := parsed.Get("api_key").String(); got != Mask {
		t.Errorf("api_key = %q, want mask", got)
	}
	if got := parsed.Get("nested.token").String(); got != Mask {
		t.Errorf("nested.token = %q, want mask", got)
	}
	if got := parsed.Get("list.0.secret").String(); got != Mask {
		t.Errorf("list.0.secret = %q, want mask", got)
	}
	if got := parsed.Get("nested.ok").String(); got != "visible" {
		t.Errorf("nested.ok = %q, non-sensitive field modified", got)
	}
	if got := parsed.Get("model").String(); got != "gpt-4o" {
		t.Errorf("model = %q", got)
	}
}

func TestRedactBodyPromptVisibility(t *testing.T) {
	body := `{"model":"gpt-4o","messages":[{"role":"user","content":"the prompt"}],"api_key":"sk-abc"}`

	t.Run("prompts masked by default", func(t *testing.T) {
		r := NewRedactor(testSensitiveKeys, false)
		out := r.Body([]byte(body))
		if got := gjson.Get(out, "messages.0.content").String(); got != Mask {
			t.Errorf("content = %q, want mask", got)
		}
		// Secrets masked regardless.
		if got := gjson.Get(out, "api_key").String(); got != Mask {
			t.Errorf("api_key = %q, want mask", got)
		}
	})

	t.Run("prompts visible when enabled", func(t *testing.T) {
		r := NewRedactor(testSensitiveKeys, true)
		out := r.Body([]byte(body))
		if got := gjson.Get(out, "messages.0.content").String(); got != "the prompt" {
			t.Errorf("content = %q, want visible prompt", got)
		}
		// Redaction of secrets is unconditional.
		if got := gjson.Get(out, "api_key").String(); got != Mask {
			t.Errorf("api_key = %q, want mask even with prompt logging", got)
		}
	})
}

func TestRedactBodyNonJSON(t *testing.T) {
	r := NewRedactor(testSensitiveKeys, false)
	out := r.Body([]byte("plain text, not json"))
	if !strings.Contains(out, "non-json body") {
		t.Errorf("Body() = %q, want byte-count marker", out)
	}
}

func TestRedactBodyTruncation(t *testing.T) {
	r := NewRedactor(testSensitiveKeys, true)
	big := `{"data":"` + strings.Repeat("x", 5000) + `"}`
	out := r.Body([]byte(big))
	if len(out) > summaryLimit+3 {
		t.Errorf("len(Body()) = %d, want at most %d", len(out), summaryLimit+3)
	}
	if !strings.HasSuffix(out, "...") {
		t.Error("truncated summary missing ellipsis")
	}
}

func TestRedactBodyEmpty(t *testing.T) {
	r := NewRedactor(testSensitiveKeys, false)
	if out := r.Body(nil); out != "" {
		t.Errorf("Body(nil) = %q, want empty", out)
	}
}
