package providers

import (
	"net/http"
	"testing"
)

func TestResolveOrg(t *testing.T) {
	tests := []struct {
		name       string
		headerOrg  string
		configured string
		wantOrg    string
		wantSet    bool
	}{
		{
			name:       "request header wins over config",
			headerOrg:  "org-from-client",
			configured: "org-from-config",
			wantOrg:    "org-from-client",
			wantSet:    true,
		},
		{
			name:       "config fallback",
			headerOrg:  "",
			configured: "org-from-config",
			wantOrg:    "org-from-config",
			wantSet:    true,
		},
		{
			name:       "neither source omits the header",
			headerOrg:  "",
			configured: "",
			wantOrg:    "",
			wantSet:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := http.Header{}
			if tt.headerOrg != "" {
				in.Set(OrgHeader, tt.headerOrg)
			}

			org, ok := ResolveOrg(in, tt.configured)
			if ok != tt.wantSet {
				t.Fatalf("ResolveOrg() ok = %v, want %v", ok, tt.wantSet)
			}
			if org != tt.wantOrg {
				t.Errorf("ResolveOrg() = %q, want %q", org, tt.wantOrg)
			}
		})
	}
}

func TestApplyOrgNeverSetsEmptyValue(t *testing.T) {
	out := http.Header{}
	ApplyOrg(out, http.Header{}, "")

	// The header must be absent, not present with an empty value.
	if _, present := out[OrgHeader]; present {
		t.Errorf("header %s present with value %q, want omitted", OrgHeader, out.Get(OrgHeader))
	}
}

func TestBrowserHeadersApply(t *testing.T) {
	b := NewBrowserHeaders(nil, nil)
	out := http.Header{}
	b.Apply(out, "https://platform.openai.com/")

	if out.Get("User-Agent") == "" {
		t.Error("User-Agent not set")
	}
	if got := out.Get("sec-fetch-mode"); got != "cors" {
		t.Errorf("sec-fetch-mode = %q, want cors", got)
	}
	if got := out.Get("Referer"); got != "https://platform.openai.com/" {
		t.Errorf("Referer = %q", got)
	}
	if got := out.Get("Origin"); got != "https://platform.openai.com" {
		t.Errorf("Origin = %q, want https://platform.openai.com", got)
	}
}

func TestBrowserHeadersOverrides(t *testing.T) {
	b := NewBrowserHeaders(map[string]string{"sec-ch-ua-platform": `"Linux"`}, []string{"test-agent/1.0"})
	out := http.Header{}
	b.Apply(out, "")

	if got := out.Get("sec-ch-ua-platform"); got != `"Linux"` {
		t.Errorf(`sec-ch-ua-platform = %q, want "Linux"`, got)
	}
	if got := out.Get("User-Agent"); got != "test-agent/1.0" {
		t.Errorf("User-Agent = %q, want test-agent/1.0", got)
	}
	if out.Get("Referer") != "" {
		t.Error("Referer set without a referer argument")
	}
}
