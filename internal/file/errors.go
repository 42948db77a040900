package file

import "errors"

// ErrUnsupportedFormat is returned when the file extension is not whitelisted.
var ErrUnsupportedFormat = errors.New("the file format is not supported")

// ErrContentRead is returned when the uploaded content cannot be read.
var ErrContentRead = errors.New("couldn't access the contents of the file")

// ErrNotFound is returned when a file does not exist in the metadata store
// or the object store. Store-specific "not found" signals are always
// translated to this error at the workflow boundary.
var ErrNotFound = errors.New("file not found")

// ErrAccessDenied is reserved for a future access-control layer. Nothing
// mints it today, but it is the only error DeleteByID propagates instead of
// swallowing.
var ErrAccessDenied = errors.New("access denied")
