package main

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Client type is used for internal values
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        *logrus.Logger
	stdout     io.Writer
	stderr     io.Writer
}

// NewClient method creates a new download client. The body goes to stdout
// only for the "-" output; digests go to stdout, progress and verbose
// response headers to stderr.
func NewClient(config *ClientConfig, log *logrus.Logger, stdout, stderr io.Writer) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}

	maxRedirects := config.maxRedirects
	httpClient := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				log.Debugf("Not following redirect to %s (limit %d)", req.URL, maxRedirects)
				return http.ErrUseLastResponse
			}
			log.Debugf("Following redirect to %s", req.URL)
			return nil
		},
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		log:        log,
		stdout:     stdout,
		stderr:     stderr,
	}
}

func (c *Client) checkWritable(path string) error {
	dir := filepath.Dir(path)
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return &IOError{Op: "access", Path: dir, Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context) (*http.Response, error) {
	target := c.config.url.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &URLError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", c.config.requestUserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ConnectionError{URL: target, Err: err}
	}
	return resp, nil
}

func (c *Client) writeResponseHead(resp *http.Response) {
	fmt.Fprintf(c.stderr, "%s %s\n", resp.Proto, resp.Status)
	for key, values := range resp.Header {
		for _, value := range values {
			fmt.Fprintf(c.stderr, "%s: %s\n", key, value)
		}
	}
}

// Run performs the single request and returns the number of body bytes
// written to the output.
func (c *Client) Run(ctx context.Context) (written int64, err error) {
	path, err := c.config.outputPath()
	if err != nil {
		return 0, err
	}

	toStdout := path == stdoutPath
	if !toStdout {
		if err := c.checkWritable(path); err != nil {
			return 0, err
		}
	}

	c.log.WithFields(logrus.Fields{
		"output":    path,
		"userAgent": c.config.requestUserAgent(),
	}).Debugf("Requesting: %s", c.config.url)

	resp, err := c.get(ctx)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if c.config.verbose {
		c.writeResponseHead(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &HTTPStatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if toStdout {
		return c.download(ctx, c.stdout, stdoutPath, resp, nil)
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	digests := []*digest{
		{name: "sha1", Hash: sha1.New()},
		{name: "sha256", Hash: sha256.New()},
	}
	written, err = c.download(ctx, out, path, resp, digests)
	if err != nil {
		return written, err
	}

	for _, d := range digests {
		fmt.Fprintf(c.stdout, "%s(%s) = %s\n", d.name, path, hex.EncodeToString(d.Sum(nil)))
	}
	return written, nil
}

type digest struct {
	hash.Hash
	name string
}

func (c *Client) download(ctx context.Context, dst io.Writer, path string, resp *http.Response, digests []*digest) (int64, error) {
	bar := newProgressBar(resp.ContentLength, filepath.Base(path), c.stderr)

	reader := &ProxyReader{Reader: resp.Body}
	reader.SetReadListener(func(diff int64) {
		_ = bar.Add64(diff)
	})

	writers := []io.Writer{dst}
	for _, d := range digests {
		writers = append(writers, d)
	}

	started := time.Now()
	written, err := io.Copy(io.MultiWriter(writers...), reader)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return written, ctx.Err()
		case reader.Err() == err:
			return written, &ConnectionError{URL: c.config.url.String(), Err: err}
		default:
			return written, &IOError{Op: "write", Path: path, Err: err}
		}
	}
	_ = bar.Finish()

	elapsed := time.Since(started)
	c.log.WithFields(logrus.Fields{
		"elapsed": elapsed.String(),
		"size":    humanize.Bytes(uint64(reader.Total())),
	}).Infof("Downloaded: %s", path)

	return written, nil
}
