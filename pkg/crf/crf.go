// Package crf provides reading functionality for Dark Engine CRF resource archives.
package crf

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
)

// Archive represents an opened CRF archive. The engine's resource files
// (obj.crf, fam.crf, mesh.crf) are plain zip containers; entry names
// are matched case-insensitively with backslashes folded to slashes.
type Archive struct {
	closer   io.Closer
	fileList map[string]*zip.File
}

// Open opens a CRF archive file for reading.
func Open(name string) (*Archive, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	archive := newArchive(&rc.Reader)
	archive.closer = rc
	return archive, nil
}

// NewArchive indexes CRF data already in memory or mapped elsewhere.
// The returned archive needs no Close.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	return newArchive(zr), nil
}

func newArchive(zr *zip.Reader) *Archive {
	archive := &Archive{
		fileList: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		archive.fileList[normalizePath(f.Name)] = f
	}
	return archive
}

// Close closes the underlying file.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// List returns all file paths in the archive, sorted and normalized.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.fileList))
	for p := range a.fileList {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(name string) bool {
	_, ok := a.fileList[normalizePath(name)]
	return ok
}

// Read reads a file from the archive.
func (a *Archive) Read(name string) ([]byte, error) {
	f, ok := a.fileList[normalizePath(name)]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Glob returns all paths carrying the given extension, with or without
// its leading dot, sorted.
func (a *Archive) Glob(ext string) []string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	var result []string
	for p := range a.fileList {
		if strings.TrimPrefix(path.Ext(p), ".") == ext {
			result = append(result, p)
		}
	}
	sort.Strings(result)
	return result
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.ToLower(p)
}
