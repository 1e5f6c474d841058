package services

import (
	"errors"
	"fmt"
)

var (
	ErrSourceNotFound      = errors.New("source not found")
	ErrMalformedSource     = errors.New("malformed source")
	ErrSourceIO            = errors.New("source read failed")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrResultsNotAvailable = errors.New("results not available for pair")
	ErrUploadsDisabled     = errors.New("uploads are not supported by this backend")
)

// SourceError ties a load failure to the source that caused it.
type SourceError struct {
	Source string
	Kind   error
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Source)
	}
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Source, e.Err)
}

func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newSourceError(source string, kind, err error) error {
	return &SourceError{Source: source, Kind: kind, Err: err}
}

// IndexError reports a selection ordinal that one of the parallel collections
// cannot satisfy.
type IndexError struct {
	Collection string
	Index      int
	Length     int
	Kind       error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: %s index %d (length %d)", e.Kind, e.Collection, e.Index, e.Length)
}

func (e *IndexError) Unwrap() error {
	return e.Kind
}

// ErrorKind returns a stable identifier for the sentinel wrapped by err.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrSourceNotFound):
		return "source_not_found"
	case errors.Is(err, ErrMalformedSource):
		return "malformed_source"
	case errors.Is(err, ErrSourceIO):
		return "source_io"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrResultsNotAvailable):
		return "results_not_available"
	case errors.Is(err, ErrUploadsDisabled):
		return "uploads_disabled"
	default:
		return "internal"
	}
}

// ErrorMessage returns the user-facing message for err. source and pairNumber
// describe the request that failed; a *SourceError overrides source.
func ErrorMessage(source string, pairNumber int, err error) string {
	var sourceErr *SourceError
	if errors.As(err, &sourceErr) {
		source = sourceErr.Source
	}

	switch {
	case errors.Is(err, ErrSourceNotFound):
		return fmt.Sprintf("File not found for source `%s`. Please make sure it exists.", source)
	case errors.Is(err, ErrMalformedSource):
		return fmt.Sprintf("Could not decode source `%s`. Please check it for formatting errors.", source)
	case errors.Is(err, ErrSourceIO):
		cause := err
		if sourceErr != nil && sourceErr.Err != nil {
			cause = sourceErr.Err
		}
		return fmt.Sprintf("An unexpected error occurred while reading `%s`: %v", source, cause)
	case errors.Is(err, ErrIndexOutOfRange):
		available := 0
		var indexErr *IndexError
		if errors.As(err, &indexErr) {
			available = indexErr.Length
		}
		return fmt.Sprintf("Document Pair %d does not exist (%d pairs available).", pairNumber, available)
	case errors.Is(err, ErrResultsNotAvailable):
		return fmt.Sprintf("Data for 'Document Pair %d' not found in `%s`.", pairNumber, source)
	case errors.Is(err, ErrUploadsDisabled):
		return "Uploads are not supported by the configured source backend."
	default:
		return "Internal server error"
	}
}
