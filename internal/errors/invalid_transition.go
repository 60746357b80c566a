package errors

import "fmt"

func InvalidTransition(from, to string) *Exception {
	return newException(KindInvalidTransition, fmt.Sprintf("cannot move gig from %s to %s", from, to))
}
