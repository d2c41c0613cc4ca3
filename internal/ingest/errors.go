package ingest

import "fmt"

// UnsupportedExtension is returned for any input file extension other than
// .json or .zip.
type UnsupportedExtension struct {
	Path string
	Ext  string
}

func (e *UnsupportedExtension) Error() string {
	return fmt.Sprintf("ingest: unsupported extension %q for %s", e.Ext, e.Path)
}

// PathNotFound is returned when the input path does not exist.
type PathNotFound struct {
	Path string
}

func (e *PathNotFound) Error() string {
	return fmt.Sprintf("ingest: path not found: %s", e.Path)
}

// PathIsDirectory is returned when the input path is a directory.
type PathIsDirectory struct {
	Path string
}

func (e *PathIsDirectory) Error() string {
	return fmt.Sprintf("ingest: path is a directory: %s", e.Path)
}

// MalformedArchive is returned when a .zip input does not contain exactly
// one entry.
type MalformedArchive struct {
	Path       string
	EntryCount int
}

func (e *MalformedArchive) Error() string {
	return fmt.Sprintf("ingest: %s: expected a single-entry zip, found %d entries", e.Path, e.EntryCount)
}
