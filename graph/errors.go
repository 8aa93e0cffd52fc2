package graph

import "fmt"

// DimensionError reports a query vector whose length does not match the
// store's configured embedding dimension.
type DimensionError struct {
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: got %d, expected %d", e.Got, e.Want)
}

// ParseError reports malformed or inconsistent snapshot content. Load never
// returns a partially valid store: any ParseError means nothing was loaded.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse snapshot %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse snapshot %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(path string, format string, args ...interface{}) *ParseError {
	return &ParseError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
