package main

import (
	"context"
	"errors"
	"fmt"
)

const (
	exitOK            = 0
	exitURLFailure    = 1
	exitOutputFailure = 2
	exitUsage         = 64
	exitInterrupted   = 130
)

// UsageError is a malformed or incomplete command line.
type UsageError struct {
	msg string
}

func usageErrorf(format string, a ...interface{}) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, a...)}
}

func (e *UsageError) Error() string { return e.msg }

// URLError reports a positional argument that is not an absolute http(s) URL.
type URLError struct {
	URL string
	Err error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *URLError) Unwrap() error { return e.Err }

// NoRemoteNameError is returned when --remote-name is requested for a URL
// whose path has no final segment.
type NoRemoteNameError struct {
	URL string
}

func (e *NoRemoteNameError) Error() string {
	return fmt.Sprintf("no remote file name in %s, use --output instead", e.URL)
}

// ConnectionError wraps network failures: DNS, dial, TLS, or a body read
// that broke off mid-stream.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// HTTPStatusError is a response outside 2xx.
type HTTPStatusError struct {
	Code   int
	Status string
}

func (e *HTTPStatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected status code: %s", e.Status)
	}
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// IOError wraps local file failures.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func exitStatus(err error) int {
	var (
		usageErr  *UsageError
		urlErr    *URLError
		nameErr   *NoRemoteNameError
		connErr   *ConnectionError
		statusErr *HTTPStatusError
		ioErr     *IOError
	)

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &usageErr):
		return exitUsage
	case errors.As(err, &urlErr), errors.As(err, &connErr), errors.As(err, &statusErr):
		return exitURLFailure
	case errors.As(err, &nameErr), errors.As(err, &ioErr):
		return exitOutputFailure
	}
	return exitURLFailure
}
