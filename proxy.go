package main

import "io"

// ProxyReader counts bytes read from the wrapped reader and remembers the
// first read error that was not io.EOF.
type ProxyReader struct {
	io.Reader
	total    int64 // Total # of bytes transferred
	err      error
	listener func(n int64)
}

func (reader *ProxyReader) Read(p []byte) (int, error) {
	n, err := reader.Reader.Read(p)
	reader.total += int64(n)
	if n > 0 && reader.listener != nil {
		reader.listener(int64(n))
	}
	if err != nil && err != io.EOF && reader.err == nil {
		reader.err = err
	}

	return n, err
}

// SetReadListener registers fn to be called with the size of every
// non-empty read.
func (reader *ProxyReader) SetReadListener(fn func(n int64)) {
	reader.listener = fn
}

// Total returns the number of bytes read so far.
func (reader *ProxyReader) Total() int64 {
	return reader.total
}

// Err returns the read error, if any.
func (reader *ProxyReader) Err() error {
	return reader.err
}
