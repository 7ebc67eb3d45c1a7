package model

import "errors"

// Error taxonomy shared by the loader and the pipeline.
// Callers wrap these with file and column context.
var (
	ErrInputNotFound      = errors.New("input not found")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrNoUsableRecords    = errors.New("no usable records")
	ErrMalformedLabelCell = errors.New("malformed label cell")
)
