package errors

// ErrOptimisticLock is returned when a gig changed between read and write and
// the mutation ran out of retries.
var ErrOptimisticLock = newException(KindConcurrency, "gig was modified concurrently, retry the request")
