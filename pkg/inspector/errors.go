package inspector

import "fmt"

// OpenError means the file could not be opened for structured access:
// missing path, permission denied, or not a recognized HDF5 container.
// It aborts the whole operation.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// DatasetNotFoundError means a dataset path did not resolve to a dataset
// entry, either because no entry exists at that path or because the entry
// is a group.
type DatasetNotFoundError struct {
	Path        string
	DatasetPath string
}

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf("dataset %q not found in %s", e.DatasetPath, e.Path)
}

// ReadError means a dataset was located but its values could not be
// decoded, for example an element type the reader does not support.
type ReadError struct {
	DatasetPath string
	Err         error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read dataset %q: %v", e.DatasetPath, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
