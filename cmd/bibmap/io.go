package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// openInput opens a file, or stdin for "" and "-". Gzip-compressed input
// is detected by its magic bytes and decompressed transparently.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	var (
		src    io.Reader = stdin
		closer io.Closer = io.NopCloser(nil)
	)

	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}

		src, closer = f, f
	}

	br := bufio.NewReader(src)

	head, err := br.Peek(len(gzipMagic))
	if err != nil || !bytes.Equal(head, gzipMagic) {
		return readCloser{Reader: br, closers: []io.Closer{closer}}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to read gzip input: %w", err)
	}

	return readCloser{Reader: zr, closers: []io.Closer{zr, closer}}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var first error

	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// openOutput creates a file, or returns stdout for "" and "-".
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}

	return f, f.Close, nil
}
