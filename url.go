package ldif

import (
	"net/url"
	"strings"
)

// QueryPair is a single key=value pair from a URL query string, in the order
// it appears in the source.
type QueryPair struct {
	Key   string
	Value string
}

// URL is an attribute value referencing external content, as produced by the
// ":<" marker. Any string is accepted as URL text; the structural parts are
// computed once at construction. Equality and ordering compare the source
// text only, so derived fields never influence comparisons.
type URL struct {
	text     string
	scheme   string
	netloc   string
	username string
	password string
	hostname string
	port     string
	path     string
	params   string
	rawQuery string
	fragment string
}

// ParseURL wraps text as a URL value. It never fails: text that does not
// look like a URL simply yields empty structural parts.
func ParseURL(text string) *URL {
	u := &URL{text: text}
	rest := text
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, ':'); i > 0 && isSchemeName(rest[:i]) {
		u.scheme = strings.ToLower(rest[:i])
		rest = rest[i+1:]
	}
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?")
		if end < 0 {
			end = len(rest)
		}
		u.netloc = rest[:end]
		rest = rest[end:]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.rawQuery = rest[i+1:]
		rest = rest[:i]
	}
	u.path = rest
	// The ";params" suffix of the last path segment is only meaningful for
	// schemes that define it; everywhere else the semicolon is path content.
	if u.scheme == "http" || u.scheme == "https" {
		u.path, u.params = splitPathParams(u.path)
	}
	u.username, u.password, u.hostname, u.port = splitNetloc(u.netloc)
	return u
}

func isSchemeName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return len(s) > 0
}

func splitPathParams(p string) (path, params string) {
	start := strings.LastIndexByte(p, '/') + 1
	i := strings.IndexByte(p[start:], ';')
	if i < 0 {
		return p, ""
	}
	i += start
	return p[:i], p[i+1:]
}

func splitNetloc(netloc string) (username, password, hostname, port string) {
	hostinfo := netloc
	if i := strings.LastIndexByte(netloc, '@'); i >= 0 {
		userinfo := netloc[:i]
		hostinfo = netloc[i+1:]
		username, password, _ = strings.Cut(userinfo, ":")
	}
	if strings.HasPrefix(hostinfo, "[") {
		// Bracketed IPv6 literal.
		bracketed := hostinfo[1:]
		if j := strings.IndexByte(bracketed, ']'); j >= 0 {
			hostname = bracketed[:j]
			rest := bracketed[j+1:]
			if strings.HasPrefix(rest, ":") {
				port = rest[1:]
			}
		} else {
			hostname = bracketed
		}
	} else {
		hostname, port, _ = strings.Cut(hostinfo, ":")
	}
	hostname = strings.ToLower(hostname)
	return username, password, hostname, port
}

// String returns the source text.
func (u *URL) String() string { return u.text }

// Equal reports whether both URLs have identical source text.
func (u *URL) Equal(o *URL) bool { return o != nil && u.text == o.text }

// Compare orders URLs by source text.
func (u *URL) Compare(o *URL) int { return strings.Compare(u.text, o.text) }

// Scheme returns the lowercased URL scheme, or "" if absent.
func (u *URL) Scheme() string { return u.scheme }

// Netloc returns the authority component: user:password@host:port.
func (u *URL) Netloc() string { return u.netloc }

// Username returns the user component of the authority, or "".
func (u *URL) Username() string { return u.username }

// Password returns the password component of the authority, or "".
func (u *URL) Password() string { return u.password }

// Hostname returns the lowercased host, without brackets for IPv6 literals.
func (u *URL) Hostname() string { return u.hostname }

// Port returns the port as a string, or "" if absent.
func (u *URL) Port() string { return u.port }

// Path returns the path component. For http and https URLs the ";params"
// suffix of the last segment is excluded; see Params.
func (u *URL) Path() string { return u.path }

// Params returns the ";params" suffix of the last path segment for http and
// https URLs, or "".
func (u *URL) Params() string { return u.params }

// RawQuery returns the query string without the leading "?".
func (u *URL) RawQuery() string { return u.rawQuery }

// Fragment returns the fragment without the leading "#".
func (u *URL) Fragment() string { return u.fragment }

// Query parses the query string into a multimap. Malformed pairs are
// dropped rather than reported.
func (u *URL) Query() url.Values {
	v, _ := url.ParseQuery(u.rawQuery)
	return v
}

// QueryPairs parses the query string into key=value pairs preserving source
// order. Components that fail percent-decoding are kept verbatim.
func (u *URL) QueryPairs() []QueryPair {
	var pairs []QueryPair
	for _, part := range strings.Split(u.rawQuery, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		pairs = append(pairs, QueryPair{Key: queryUnescape(k), Value: queryUnescape(v)})
	}
	return pairs
}

func queryUnescape(s string) string {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return out
}
