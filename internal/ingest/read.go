package ingest

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// readBytes resolves one input path to its raw document bytes, transparently
// unwrapping a single-entry .zip. Only .json and .zip are accepted.
func readBytes(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &PathNotFound{Path: path}
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, &PathIsDirectory{Path: path}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "json":
		return os.ReadFile(path)
	case "zip":
		return readSingleEntryZip(path)
	default:
		return nil, &UnsupportedExtension{Path: path, Ext: ext}
	}
}

func readSingleEntryZip(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open zip %s: %w", path, err)
	}
	defer r.Close()

	if len(r.File) != 1 {
		return nil, &MalformedArchive{Path: path, EntryCount: len(r.File)}
	}

	f, err := r.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("ingest: open zip entry in %s: %w", path, err)
	}
	defer f.Close()

	return io.ReadAll(f)
}
