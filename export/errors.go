package export

import "errors"

var (
	// ErrInvalidEntityOverlap is returned when entity range starts while
	// another entity of the same block is still open.
	ErrInvalidEntityOverlap = errors.New("entity ranges overlap")
	// ErrMissingEntityReference is returned when entity range refers to key
	// absent from document entity map.
	ErrMissingEntityReference = errors.New("entity is not in entity map")
	// ErrUnknownEncoding is returned for output charsets which cannot be produced.
	ErrUnknownEncoding = errors.New("unsupported output encoding")
)
