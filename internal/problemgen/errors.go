package problemgen

import "fmt"

// TransportError indicates the completion request itself failed: transport
// error, non-success status, or a truncated/empty response from the
// provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NoArrayError indicates the completion text contained no JSON array span
// to recover.
type NoArrayError struct {
	Text string
}

func (e *NoArrayError) Error() string {
	return "no JSON array found in completion text"
}

// ParseError indicates a bracketed span was found but could not be parsed
// as a question array.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse question array: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
