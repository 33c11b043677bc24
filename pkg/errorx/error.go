package errorx

import "fmt"

type Error struct {
	Code    uint64
	Kind    string
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// New creates an Error with the wire-stable kind registered for the code.
func New(code Code, format string, a ...any) Error {
	return Error{
		Code:    uint64(code),
		Kind:    kinds[code],
		Message: fmt.Sprintf(format, a...),
	}
}
