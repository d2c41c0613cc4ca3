package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	staticPrefix  = "static_data_"
	staticSuffix  = ".zip"
	dynamicPrefix = "dynamic_data_"
	seedMarker    = "_seed"
)

// UnknownFilenameFormat is returned when a filename matches neither the
// static nor the dynamic convention.
type UnknownFilenameFormat struct {
	Filename string
}

func (e *UnknownFilenameFormat) Error() string {
	return fmt.Sprintf("pipeline: unrecognised filename format: %q", e.Filename)
}

// NotADynamicFile is returned when a seed is requested from a static-data
// filename (static files carry no seed).
type NotADynamicFile struct {
	Filename string
}

func (e *NotADynamicFile) Error() string {
	return fmt.Sprintf("pipeline: %q is not a dynamic-data file", e.Filename)
}

// mapName extracts the map name from a filename following either the
// static_data_<map>.zip or dynamic_data_<map>_seed<N>.<ext> convention. An
// empty filename yields "test_case" regardless of convention.
func mapName(filename string) (string, error) {
	if filename == "" {
		return "test_case", nil
	}

	if strings.HasPrefix(filename, staticPrefix) && strings.HasSuffix(filename, staticSuffix) {
		m := strings.TrimSuffix(strings.TrimPrefix(filename, staticPrefix), staticSuffix)
		return m, nil
	}

	if strings.HasPrefix(filename, dynamicPrefix) {
		rest := strings.TrimPrefix(filename, dynamicPrefix)
		idx := strings.LastIndex(rest, seedMarker)
		if idx < 0 {
			return "", &UnknownFilenameFormat{Filename: filename}
		}
		return rest[:idx], nil
	}

	return "", &UnknownFilenameFormat{Filename: filename}
}

// seed extracts the integer seed from a dynamic_data_<map>_seed<N>.<ext>
// filename. An empty filename yields seed 0. Returns NotADynamicFile for
// static filenames and UnknownFilenameFormat for anything else.
func seed(filename string) (int, error) {
	if filename == "" {
		return 0, nil
	}

	if strings.HasPrefix(filename, staticPrefix) && strings.HasSuffix(filename, staticSuffix) {
		return 0, &NotADynamicFile{Filename: filename}
	}

	if !strings.HasPrefix(filename, dynamicPrefix) {
		return 0, &UnknownFilenameFormat{Filename: filename}
	}

	rest := strings.TrimPrefix(filename, dynamicPrefix)
	idx := strings.LastIndex(rest, seedMarker)
	if idx < 0 {
		return 0, &UnknownFilenameFormat{Filename: filename}
	}

	tail := rest[idx+len(seedMarker):]
	dot := strings.LastIndex(tail, ".")
	if dot < 0 {
		return 0, &UnknownFilenameFormat{Filename: filename}
	}

	n, err := strconv.Atoi(tail[:dot])
	if err != nil {
		return 0, &UnknownFilenameFormat{Filename: filename}
	}

	return n, nil
}

// extension returns the filename's extension without its leading dot.
func extension(filename string) string {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return ""
	}
	return strings.ToLower(filename[dot+1:])
}
