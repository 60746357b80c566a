package errors

import "fmt"

func Validation(format string, args ...any) *Exception {
	return newException(KindValidation, fmt.Sprintf(format, args...))
}

var ErrMissingIdentity = newException(KindAuthorization, "missing user identity")
