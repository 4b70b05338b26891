package main

import "net/url"

// ClientConfig holds the data resolved from the command line
type ClientConfig struct {
	url          *url.URL
	output       string
	remoteName   bool
	userAgent    string
	maxRedirects int
	verbose      bool
}

// outputPath picks where the body is written: the explicit output first,
// then the remote name, then the default page name.
func (c *ClientConfig) outputPath() (string, error) {
	if c.output != "" {
		return c.output, nil
	}

	name, ok := remoteName(c.url)
	if c.remoteName && !ok {
		return "", &NoRemoteNameError{URL: c.url.String()}
	}
	if !ok {
		return defaultFilename, nil
	}
	return name, nil
}

func (c *ClientConfig) requestUserAgent() string {
	if c.userAgent != "" {
		return c.userAgent
	}
	return defaultUserAgent
}
