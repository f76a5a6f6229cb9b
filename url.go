package cannibal

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// ParseSeed parses a seed URL. Seeds must be absolute http or https URLs.
func ParseSeed(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(EINVALID, "seed URL required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL %q is not absolute", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "seed URL %q must use http or https", raw)
	}
	return normalize(u), nil
}

// NormalizeURL resolves href against base and returns the canonical form
// used for crawl deduplication. It returns "" for hrefs that cannot be
// parsed or that do not resolve to an http(s) URL.
func NormalizeURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	return normalize(u).String()
}

// normalize lowercases scheme and host, drops the default port,
// the fragment and user info, and maps an empty path to "/".
func normalize(u *url.URL) *url.URL {
	n := *u
	n.Scheme = strings.ToLower(n.Scheme)
	n.Host = strings.ToLower(n.Host)
	if host, port, err := net.SplitHostPort(n.Host); err == nil {
		if (n.Scheme == "http" && port == "80") || (n.Scheme == "https" && port == "443") {
			n.Host = host
		}
	}
	n.Fragment = ""
	n.RawFragment = ""
	n.User = nil
	if n.Path == "" {
		n.Path = "/"
		n.RawPath = ""
	}
	return &n
}

// Origin returns the scheme://host[:port] of a URL.
func Origin(u *url.URL) string {
	n := normalize(u)
	return n.Scheme + "://" + n.Host
}

// OriginOf returns the origin of a raw URL, or "" if it cannot be parsed.
func OriginOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return Origin(u)
}

// SameOrigin reports whether two raw URLs share scheme, host, and port.
func SameOrigin(a, b string) bool {
	oa := OriginOf(a)
	return oa != "" && oa == OriginOf(b)
}

// URLFilter limits which discovered URLs are crawled.
// A URL passes when it matches any Include pattern (or Include is empty)
// and no Exclude pattern.
type URLFilter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns.
// Returns nil when both lists are empty.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match reports whether the URL passes the filter.
func (f *URLFilter) Match(rawURL string) bool {
	if f == nil {
		return true
	}
	for _, re := range f.Exclude {
		if re.MatchString(rawURL) {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, re := range f.Include {
		if re.MatchString(rawURL) {
			return true
		}
	}
	return false
}
