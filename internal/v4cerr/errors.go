// Package v4cerr defines the error taxonomy shared by the extraction toolkit.
//
// There are three kinds: InputError for invalid user input caught before any
// file I/O, FileError for failures while reading or writing data files, and
// everything else wrapped as UnexpectedError. Callers distinguish them with
// errors.As.
package v4cerr

import "fmt"

// InputError reports invalid user input. It is raised before any file I/O
// and is never retried.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Msg
}

// Inputf creates an InputError with a formatted message.
func Inputf(format string, args ...interface{}) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// FileError reports a failure while reading or writing a data file. Path
// names the offending file; Resolution is the contact-matrix resolution in
// play (0 when not applicable); Stage describes what was being attempted.
type FileError struct {
	Path       string
	Resolution int
	Stage      string
	Err        error
}

func (e *FileError) Error() string {
	if e.Resolution > 0 {
		return fmt.Sprintf("%s %s (resolution %d): %v", e.Stage, e.Path, e.Resolution, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Filef wraps err as a FileError for the given file and stage.
func Filef(stage, path string, resolution int, err error) error {
	return &FileError{Path: path, Resolution: resolution, Stage: stage, Err: err}
}

// UnexpectedError wraps any failure that is neither invalid input nor a file
// processing problem, so low-level errors never leak to callers unclassified.
type UnexpectedError struct {
	Context string
	Err     error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error in %s: %v", e.Context, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
