package dataset

import "fmt"

// UnsupportedFormatError indicates the uploaded bytes parsed neither as
// semicolon-delimited text nor as a spreadsheet. Err carries the spreadsheet
// failure, the last parse attempted.
type UnsupportedFormatError struct {
	Name string
	Err  error
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format for %q: %v", e.Name, e.Err)
}

func (e *UnsupportedFormatError) Unwrap() error { return e.Err }

// UnknownColumnError indicates a column name absent from the dataset schema.
// Surfacing one means the caller is misconfigured, not that the upload is bad.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}
