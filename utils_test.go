package main

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteName(t *testing.T) {
	cases := []struct {
		url  string
		name string
		ok   bool
	}{
		{"https://host/dir/file.txt", "file.txt", true},
		{"https://host/file.tar.gz?sig=abc#frag", "file.tar.gz", true},
		{"https://host/dir/a%20b.txt", "a b.txt", true},
		{"https://host", "", false},
		{"https://host/", "", false},
		{"https://host/dir/", "", false},
		{"https://host/dir/..", "", false},
		{"https://host/dir/a%2Fb", "", false},
	}

	for _, tc := range cases {
		u, err := url.Parse(tc.url)
		require.NoError(t, err)

		name, ok := remoteName(u)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.name, name, tc.url)
	}
}

func TestParseURL(t *testing.T) {
	valid := []string{
		"http://127.0.0.1:8080/file",
		"https://[::1]/file",
		"HTTPS://example.com/file",
		"https://bücher.example/file",
		"https://r3---sn-abc.googlevideo.com/videoplayback",
		"http://my_host.internal/file.txt",
	}
	for _, raw := range valid {
		_, err := parseURL(raw)
		assert.NoError(t, err, raw)
	}

	invalid := []string{
		"",
		"file.txt",
		"/abs/path",
		"ftp://example.com/file",
		"https://",
		"mailto:someone@example.com",
		"http://[::1",
	}
	for _, raw := range invalid {
		_, err := parseURL(raw)
		var urlErr *URLError
		assert.ErrorAs(t, err, &urlErr, raw)
	}
}

func TestOutputPath(t *testing.T) {
	mustURL := func(raw string) *url.URL {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		return u
	}

	cases := []struct {
		name   string
		config ClientConfig
		want   string
	}{
		{"explicit", ClientConfig{url: mustURL("https://host/"), output: "NAME", remoteName: true}, "NAME"},
		{"remote name", ClientConfig{url: mustURL("https://host/dir/file.txt"), remoteName: true}, "file.txt"},
		{"default from url", ClientConfig{url: mustURL("https://host/dir/file.txt")}, "file.txt"},
		{"default page", ClientConfig{url: mustURL("https://host/")}, defaultFilename},
		{"stdout", ClientConfig{url: mustURL("https://host/"), output: stdoutPath}, stdoutPath},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.config.outputPath()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	config := ClientConfig{url: mustURL("https://host/"), remoteName: true}
	_, err := config.outputPath()
	var nameErr *NoRemoteNameError
	assert.ErrorAs(t, err, &nameErr)
}
