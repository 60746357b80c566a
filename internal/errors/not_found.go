package errors

var (
	ErrGigNotFound         = newException(KindNotFound, "gig not found")
	ErrApplicationNotFound = newException(KindNotFound, "application not found")
)
