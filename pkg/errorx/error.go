package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether any error in err's chain is an Error carrying code.
func Is(err error, code Code) bool {
	var e Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Code == code
}

// CodeOf returns the code of err, or Unknown.Code if err is not an Error.
func CodeOf(err error) Code {
	var e Error
	if !errors.As(err, &e) {
		return Unknown.Code
	}

	return e.Code
}

// KindOf classifies err. Errors which are not an Error are Internal.
func KindOf(err error) Kind {
	return CodeOf(err).Kind()
}
