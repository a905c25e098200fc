package domain

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	ErrToolchainMissing     = errors.New("toolchain missing")
	ErrFileUnreadable       = errors.New("file unreadable")
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrOutputExists         = errors.New("output already exists")
	ErrToolInvocationFailed = errors.New("tool invocation failed")
	ErrOutputWriteFailed    = errors.New("output write failed")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrCancelled            = errors.New("cancelled")
)

// ErrorKind is the stable, storable name of a per-file failure.
type ErrorKind string

const (
	ErrorKindNone                 ErrorKind = ""
	ErrorKindToolchainMissing     ErrorKind = "toolchain_missing"
	ErrorKindFileUnreadable       ErrorKind = "file_unreadable"
	ErrorKindUnsupportedFormat    ErrorKind = "unsupported_format"
	ErrorKindOutputExists         ErrorKind = "output_exists"
	ErrorKindToolInvocationFailed ErrorKind = "tool_invocation_failed"
	ErrorKindOutputWriteFailed    ErrorKind = "output_write_failed"
	ErrorKindInvalidRequest       ErrorKind = "invalid_request"
	ErrorKindCancelled            ErrorKind = "cancelled"
)

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrToolchainMissing, ErrorKindToolchainMissing},
	{ErrFileUnreadable, ErrorKindFileUnreadable},
	{ErrUnsupportedFormat, ErrorKindUnsupportedFormat},
	{ErrOutputExists, ErrorKindOutputExists},
	{ErrOutputWriteFailed, ErrorKindOutputWriteFailed},
	{ErrInvalidRequest, ErrorKindInvalidRequest},
	{ErrCancelled, ErrorKindCancelled},
	{ErrToolInvocationFailed, ErrorKindToolInvocationFailed},
}

// KindOf maps err to its ErrorKind. Errors that wrap none of the known
// sentinels are reported as tool invocation failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ErrorKindToolInvocationFailed
}
