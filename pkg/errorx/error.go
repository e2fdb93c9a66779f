package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string

	// Data optionally carries structured detail about the error (for example,
	// which existing application a duplicate submission collided with). It is
	// rendered into the response envelope as-is.
	Data any
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) WithData(data any) Error {
	e.Data = data
	return e
}
