package media

import (
	"net/url"
	"strings"
)

// ObjectPrefix starts every canonical object path.
const ObjectPrefix = "/objects/"

// CanonicalObjectPath rewrites a transport URL (CDN, presigned or local
// upload endpoint) into the /objects/... path the storefront stores. The
// first path segment names the transport and is dropped. URLs that cannot be
// parsed, or are too short to carry an object path, are returned unchanged.
func CanonicalObjectPath(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	parts := strings.Split(u.Path, "/")
	if len(parts) < 3 {
		return raw
	}
	return ObjectPrefix + strings.Join(parts[2:], "/")
}
