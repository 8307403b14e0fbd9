// Package errs defines the closed error taxonomy used across bcmr's engines.
package errs

import "fmt"

// TargetExists is returned when a destination collides without force/resume.
type TargetExists struct {
	Path string
}

func (e *TargetExists) Error() string {
	return fmt.Sprintf("target exists: %s", e.Path)
}

// SourceNotFound is returned when a source path does not exist.
type SourceNotFound struct {
	Path string
}

func (e *SourceNotFound) Error() string {
	return fmt.Sprintf("source not found: %s", e.Path)
}

// InvalidInput is returned for flag misuse or malformed values.
type InvalidInput struct {
	Msg string
}

func (e *InvalidInput) Error() string {
	return e.Msg
}

// Reflink is returned when reflink=force and the filesystem rejects it.
type Reflink struct {
	Detail string
}

func (e *Reflink) Error() string {
	return fmt.Sprintf("reflink failed: %s", e.Detail)
}

// VerificationError is returned on a post-copy hash mismatch.
type VerificationError struct {
	Path string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed: %s", e.Path)
}

// TraversalError wraps a failure encountered while walking a directory.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traversal error at %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// PatternError wraps a regex compilation failure for an exclude pattern.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// InsufficientSpace is returned when the destination filesystem does not
// have enough free space to hold a planned transfer.
type InsufficientSpace struct {
	Path      string
	Required  uint64
	Available uint64
}

func (e *InsufficientSpace) Error() string {
	return fmt.Sprintf("not enough free space at %s: need %d bytes, have %d", e.Path, e.Required, e.Available)
}

// Cancelled is returned when a user interrupt occurs during a confirmation
// path or a cooperative cancellation check.
type Cancelled struct{}

func (e *Cancelled) Error() string { return "operation cancelled" }

// IO wraps an underlying filesystem error without discarding its cause.
type IO struct {
	Op  string
	Err error
}

func (e *IO) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IO) Unwrap() error { return e.Err }

// WrapIO wraps err as an IO error tagged with op, or returns nil if err is nil.
func WrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IO{Op: op, Err: err}
}
