package audit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Mask replaces every sensitive value. A fixed string, never a hash of
// the original.
const Mask = "[REDACTED]"

// summaryLimit bounds body summaries so audit entries stay readable.
const summaryLimit = 2000

// promptFields are the body fields holding user-visible prompt text.
// They are masked unless prompt logging is enabled.
var promptFields = map[string]struct{}{
	"content": {},
	"prompt":  {},
	"system":  {},
}

// Redactor masks sensitive keys in headers and JSON bodies.
type Redactor struct {
	sensitive  map[string]struct{}
	logPrompts bool
}

// NewRedactor creates a redactor for the given sensitive-key set.
// Matching is case-insensitive. logPrompts controls whether prompt
// text survives into body summaries; secrets are masked either way.
func NewRedactor(sensitiveKeys []string, logPrompts bool) *Redactor {
	sensitive := make(map[string]struct{}, len(sensitiveKeys))
	for _, k := range sensitiveKeys {
		sensitive[strings.ToLower(k)] = struct{}{}
	}
	return &Redactor{sensitive: sensitive, logPrompts: logPrompts}
}

// Headers returns a flattened, redacted copy of a header set.
func (r *Redactor) Headers(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, values := range h {
		if _, ok := r.sensitive[strings.ToLower(k)]; ok {
			out[k] = Mask
			continue
		}
		out[k] = strings.Join(values, ", ")
	}
	return out
}

// Body returns a redacted summary of a JSON body: sensitive fields are
// masked at any nesting depth, prompt fields are masked unless prompt
// logging is on, and the result is truncated to a fixed limit.
// Non-JSON bodies summarize to a byte-count marker.
func (r *Redactor) Body(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return nonJSONSummary(len(body))
	}

	redacted := body
	for _, path := range r.collectPaths(gjson.ParseBytes(body), "") {
		if out, err := sjson.SetBytes(redacted, path, Mask); err == nil {
			redacted = out
		}
	}
	return truncate(string(redacted), summaryLimit)
}

// collectPaths walks the parsed body and returns the sjson paths of
// every value to mask.
func (r *Redactor) collectPaths(value gjson.Result, prefix string) []string {
	var paths []string
	value.ForEach(func(key, child gjson.Result) bool {
		name := key.String()
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		if r.shouldMask(name) {
			paths = append(paths, path)
			return true
		}
		if child.IsObject() || child.IsArray() {
			paths = append(paths, r.collectPaths(child, path)...)
		}
		return true
	})
	return paths
}

func (r *Redactor) shouldMask(key string) bool {
	lower := strings.ToLower(key)
	if _, ok := r.sensitive[lower]; ok {
		return true
	}
	if r.logPrompts {
		return false
	}
	_, isPrompt := promptFields[lower]
	return isPrompt
}

func nonJSONSummary(n int) string {
	return "<non-json body, " + strconv.Itoa(n) + " bytes>"
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
