package providers

import (
	"net/http"
)

// OrgHeader is the OpenAI organization header name.
const OrgHeader = "OpenAI-Organization"

// ResolveOrg applies the organization precedence: a non-empty
// request-supplied header wins, else the configured default, else the
// header is omitted entirely. Forwarding an empty value is not an
// option; upstreams reject it.
func ResolveOrg(header http.Header, configured string) (string, bool) {
	if v := header.Get(OrgHeader); v != "" {
		return v, true
	}
	if configured != "" {
		return configured, true
	}
	return "", false
}

// ApplyOrg sets the organization header on an outbound header set per
// ResolveOrg, or leaves it unset when neither source provides a value.
func ApplyOrg(out http.Header, in http.Header, configured string) {
	if org, ok := ResolveOrg(in, configured); ok {
		out.Set(OrgHeader, org)
	}
}
