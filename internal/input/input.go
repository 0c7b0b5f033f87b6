// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package input reads JSON input files for the jcq tool, decompressing them
// according to their file extension.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Stdin is the path that denotes standard input.
const Stdin = "-"

// Compression identifies the compression format of an input.
type Compression string

// Supported compression formats.
const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	LZ4  Compression = "lz4"
)

// CompressionOf reports the compression format implied by the extension of
// path. Standard input is never treated as compressed.
func CompressionOf(path string) Compression {
	if path == Stdin {
		return None
	}
	switch filepath.Ext(path) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return None
}

// ReadFile reads the complete contents of the file at path, decompressing
// them if required. If path == Stdin, it reads from stdin instead.
func ReadFile(path string, stdin io.Reader) ([]byte, error) {
	if path == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := Read(f, CompressionOf(path))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

// Read reads the complete contents of r, decompressing them with comp.
func Read(r io.Reader, comp Compression) ([]byte, error) {
	switch comp {
	case None:
		return io.ReadAll(r)

	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return readAll(zr, comp)

	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return readAll(zr, comp)

	case LZ4:
		return readAll(lz4.NewReader(r), comp)

	default:
		return nil, fmt.Errorf("unsupported compression %q", comp)
	}
}

func readAll(r io.Reader, comp Compression) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", comp, err)
	}
	return data, nil
}
