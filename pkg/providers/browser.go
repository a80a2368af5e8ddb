package providers

import (
	"math/rand"
	"net/http"
	"net/url"
)

// defaultUserAgents is the built-in pool of real browser user-agent
// strings. One is picked at random per request.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4.1 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:125.0) Gecko/20100101 Firefox/125.0",
}

// defaultBrowserHeaders is the static browser-emulation header set
// applied to every outbound call. Config may override or extend it.
var defaultBrowserHeaders = map[string]string{
	"Accept":             "application/json",
	"Accept-Language":    "en-US,en;q=0.9",
	"sec-fetch-site":     "same-site",
	"sec-fetch-mode":     "cors",
	"sec-fetch-dest":     "empty",
	"sec-ch-ua":          `"Google Chrome";v="124", "Chromium";v="124", "Not-A.Brand";v="99"`,
	"sec-ch-ua-mobile":   "?0",
	"sec-ch-ua-platform": `"macOS"`,
}

// BrowserHeaders builds the browser-emulation header set for an
// outbound call: the static table, a randomly picked user agent, and a
// referer/origin pair derived from the upstream's console site.
type BrowserHeaders struct {
	headers    map[string]string
	userAgents []string
}

// NewBrowserHeaders creates the header set, with config overrides
// merged over the built-in table. Empty slices and maps keep the
// defaults.
func NewBrowserHeaders(overrides map[string]string, userAgents []string) *BrowserHeaders {
	headers := make(map[string]string, len(defaultBrowserHeaders)+len(overrides))
	for k, v := range defaultBrowserHeaders {
		headers[k] = v
	}
	for k, v := range overrides {
		headers[k] = v
	}
	if len(userAgents) == 0 {
		userAgents = defaultUserAgents
	}
	return &BrowserHeaders{headers: headers, userAgents: userAgents}
}

// Apply sets the emulation headers on an outbound header set. referer,
// when non-empty, also sets the Origin header to the referer's origin.
func (b *BrowserHeaders) Apply(out http.Header, referer string) {
	for k, v := range b.headers {
		out.Set(k, v)
	}
	out.Set("User-Agent", b.userAgents[rand.Intn(len(b.userAgents))])
	if referer != "" {
		out.Set("Referer", referer)
		if u, err := url.Parse(referer); err == nil && u.Scheme != "" && u.Host != "" {
			out.Set("Origin", u.Scheme+"://"+u.Host)
		}
	}
}
