package linkwish

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// trackingParams is the deny-list of query parameters removed during
// canonicalization. These carry campaign attribution, not content identity.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"utm_id":       {},
	"fbclid":       {},
	"gclid":        {},
	"msclkid":      {},
	"ttclid":       {},
	"igshid":       {},
	"mc_cid":       {},
	"mc_eid":       {},
}

var schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Sanitize trims surrounding whitespace and prefixes "https://" when the
// input has no scheme. It performs no validation; use Canonicalize for that.
func Sanitize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !schemeRE.MatchString(raw) {
		return "https://" + raw
	}
	return raw
}

// Canonicalize converts a raw URL into its canonical form used as the
// deduplication key and extraction target:
//
//   - scheme forced to https (http accepted, anything else rejected)
//   - host lowercased and IDNA-normalized, "www." prefix stripped
//   - default ports removed
//   - fragment removed
//   - tracking query parameters removed; remaining parameters keep their
//     original order and casing
//   - trailing slash stripped
//
// Canonicalize is idempotent: applying it to its own output is a no-op.
func Canonicalize(raw string) (string, error) {
	u, err := url.Parse(Sanitize(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	u.Scheme = "https"

	host := canonicalHost(u.Hostname())
	if host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	if port := u.Port(); port != "" && port != "80" && port != "443" {
		host = net.JoinHostPort(host, port)
	}
	u.Host = host

	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = stripTrackingParams(u.RawQuery)
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = strings.TrimRight(u.RawPath, "/")

	return u.String(), nil
}

// canonicalHost lowercases the host, applies IDNA normalization for
// non-ASCII hostnames, and strips a leading "www." label. IP literals are
// returned unchanged apart from lowercasing.
func canonicalHost(host string) string {
	host = strings.ToLower(host)
	if net.ParseIP(host) != nil {
		return host
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	for strings.HasPrefix(host, "www.") {
		host = strings.TrimPrefix(host, "www.")
	}
	return host
}

// stripTrackingParams removes deny-listed query parameters while preserving
// the order and encoding of everything else. url.Values is a map and would
// scramble parameter order, so the raw query is filtered in place.
func stripTrackingParams(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	pairs := strings.Split(rawQuery, "&")
	kept := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if _, denied := trackingParams[strings.ToLower(key)]; denied {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

// ValidateTarget rejects URLs whose host points at private or internal
// network space. This protects the extraction service from being used to
// probe infrastructure it can reach but callers cannot (SSRF). The check is
// purely syntactic; no DNS resolution is performed.
func ValidateTarget(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return Errorf(EINVALID, "URL host %q is not allowed", host)
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil
	}
	// IsPrivate covers RFC 1918 and IPv6 unique-local (fc00::/7).
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return Errorf(EINVALID, "URL host %q is not allowed", host)
	}
	return nil
}
