package persist

import "fmt"

// IndexerError is the uniform error kind for in-band failures of the cycle:
// strategy configuration, RPC and query I/O, and decoding. It is not the only
// error type: a repository lookup that finds no row or more than one returns
// ErrNotFound, and the bootstrap steps (env.Validate, postgres.Connect)
// return plain errors. The originating context is preserved in Reason, following the teacher's
// logrus field conventions where callers attach additional context when they
// log it rather than nesting error types.
type IndexerError struct {
	Reason string
}

func (e IndexerError) Error() string {
	return e.Reason
}

// Errorf builds an IndexerError with a formatted reason.
func Errorf(format string, args ...any) IndexerError {
	return IndexerError{Reason: fmt.Sprintf(format, args...)}
}

// ErrNotFound is returned by repository loads when the expected single row
// is absent or when more than one row matches a lookup that should be unique.
type ErrNotFound struct {
	Entity string
	Key    string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found for %s", e.Entity, e.Key)
}
