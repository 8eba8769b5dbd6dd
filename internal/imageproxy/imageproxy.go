package imageproxy

import (
	"net/url"
	"strings"
)

const proxyHost = "https://wsrv.nl/"

// ProxiedURL rewrites an external image URL to route through the wsrv.nl
// resizing proxy. Plain http sources are upgraded to https before wrapping.
func ProxiedURL(raw string) string {
	if raw == "" {
		return ""
	}
	secure := raw
	if strings.HasPrefix(strings.ToLower(raw), "http://") {
		secure = "https://" + raw[len("http://"):]
	}
	return proxyHost + "?url=" + url.QueryEscape(secure)
}
