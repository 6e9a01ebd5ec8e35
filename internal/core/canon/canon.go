// Package canon turns raw reported links into canonical URLs and resource
// identities. Everything here is a pure function of its inputs except the
// chapter lookup, which goes through the ChapterResolver seam
// Pipeline order
// 1 Trim and reject free text before the link
// 2 Default the scheme to https
// 3 Fold known host aliases onto the primary host
// 4 Split the path into segments and normalize the trailing slash
package canon

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned for empty, hostless, prefixed, or off-site input
var ErrInvalidURL = errors.New("canon: invalid url")

// Config controls host handling during normalization
type Config struct {
	// PrimaryHost is the canonical site host used for grouping
	PrimaryHost string

	// AliasHosts all fold onto PrimaryHost for comparison purposes
	// www prefixes are stripped before the alias check
	AliasHosts []string

	// RequireKnownHost rejects hosts that are neither primary nor alias
	// off by default, stricter callers opt in
	RequireKnownHost bool
}

// Default returns the archive site config
func Default() Config {
	return Config{
		PrimaryHost: "archiveofourown.org",
		AliasHosts: []string{
			"archiveofourown.com",
			"archiveofourown.net",
			"ao3.org",
			"ao3.com",
		},
	}
}

// URL is a parsed canonical link. The path always renders with exactly one
// trailing slash. Query and fragment are kept for display but never take
// part in identity grouping
type URL struct {
	Scheme   string
	Host     string
	Path     []string
	RawQuery string
	Fragment string
}

// String renders the canonical form scheme://host/segments/?query#fragment
func (u URL) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteByte('/')
	for _, seg := range u.Path {
		b.WriteString(seg)
		b.WriteByte('/')
	}
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// PathString returns the normalized path with leading and trailing slash
func (u URL) PathString() string {
	if len(u.Path) == 0 {
		return "/"
	}
	return "/" + strings.Join(u.Path, "/") + "/"
}

// Normalize parses raw into a canonical URL under cfg
// It never truncates and never touches the network
func Normalize(cfg Config, raw string) (URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return URL{}, ErrInvalidURL
	}

	// free text before a discoverable link is always rejected
	// a second scheme inside the path or query is not a prefix
	if !hasScheme(s) {
		if schemeIndex(s) >= 0 {
			return URL{}, ErrInvalidURL
		}
		if strings.ContainsAny(s, " \t") {
			return URL{}, ErrInvalidURL
		}
		s = "https://" + s
	}

	parsed, err := url.Parse(s)
	if err != nil || parsed.Host == "" {
		return URL{}, ErrInvalidURL
	}
	scheme := parsed.Scheme
	if scheme != "http" && scheme != "https" {
		return URL{}, ErrInvalidURL
	}

	host := strings.ToLower(parsed.Hostname())
	bare := strings.TrimPrefix(host, "www.")
	known := bare == cfg.PrimaryHost
	for _, a := range cfg.AliasHosts {
		if bare == a {
			host = cfg.PrimaryHost
			known = true
			break
		}
	}
	if bare == cfg.PrimaryHost {
		host = cfg.PrimaryHost
	}
	if !known && cfg.RequireKnownHost {
		return URL{}, ErrInvalidURL
	}

	return URL{
		Scheme:   scheme,
		Host:     host,
		Path:     splitPath(parsed.EscapedPath()),
		RawQuery: parsed.RawQuery,
		Fragment: parsed.Fragment,
	}, nil
}

// hasScheme reports whether s itself starts with an http scheme
func hasScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// schemeIndex returns the index of an http scheme in s, -1 when absent
func schemeIndex(s string) int {
	for _, p := range []string{"https://", "http://"} {
		if i := strings.Index(s, p); i >= 0 {
			return i
		}
	}
	return -1
}

// splitPath breaks a URL path into non-empty segments
func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
