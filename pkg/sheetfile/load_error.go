package sheetfile

import "fmt"

// LoadError is returned when a sheet file fails to evaluate.
type LoadError struct {
	// Filename is the name of the file.
	Filename string
	// Backtrace is the starlark call stack at the point of failure, when
	// known.
	Backtrace string
	// Err is the underlying error.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
