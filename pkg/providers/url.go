package providers

import (
	"strings"
)

// JoinURL joins an upstream base URL and a request path, collapsing a
// duplicated /v1 segment so both "https://host" and "https://host/v1"
// base forms work with inbound /v1/... paths.
func JoinURL(base, path string) string {
	base = strings.TrimSuffix(base, "/")
	if strings.HasSuffix(base, "/v1") && strings.HasPrefix(path, "/v1/") {
		path = strings.TrimPrefix(path, "/v1")
	}
	return base + path
}
