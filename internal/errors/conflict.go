package errors

var (
	ErrGigNotOpen           = newException(KindConflict, "gig not open")
	ErrSelfApplication      = newException(KindConflict, "self-application")
	ErrDuplicateApplication = newException(KindConflict, "duplicate")
	ErrNotPending           = newException(KindConflict, "not pending")
)
