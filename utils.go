package main

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

const (
	// Inspired by the --default-page option of wget
	defaultFilename = "index.html"

	// stdoutPath as an output sends the body to standard output
	stdoutPath = "-"
)

// parseURL accepts only absolute http and https URLs with a usable host.
func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &URLError{URL: raw, Err: errors.Unwrap(err)}
	}

	switch {
	case !u.IsAbs():
		return nil, &URLError{URL: raw, Err: errors.New("not an absolute URL")}
	case u.Scheme != "http" && u.Scheme != "https":
		return nil, &URLError{URL: raw, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	case u.Opaque != "" || u.Hostname() == "":
		return nil, &URLError{URL: raw, Err: errors.New("missing host")}
	}

	// "_" and "--" are legal in host names; only non-ASCII names are checked.
	if host := u.Hostname(); net.ParseIP(host) == nil && !isASCII(host) {
		if _, err := idna.Punycode.ToASCII(host); err != nil {
			return nil, &URLError{URL: raw, Err: fmt.Errorf("invalid host %q: %w", host, err)}
		}
	}

	return u, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// remoteName returns the last path segment of u, percent-decoded. A path
// that is empty or ends in "/" has no remote name.
func remoteName(u *url.URL) (string, bool) {
	p := u.EscapedPath()
	if p == "" || strings.HasSuffix(p, "/") {
		return "", false
	}

	segment := p[strings.LastIndex(p, "/")+1:]
	name, err := url.PathUnescape(segment)
	if err != nil {
		return "", false
	}

	// Pass if the name would escape the working directory
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}

	return name, true
}
