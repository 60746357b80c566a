package errors

var (
	ErrNotGigOwner  = newException(KindAuthorization, "only the poster can perform this action")
	ErrNotApplicant = newException(KindAuthorization, "only the applicant can perform this action")
)
