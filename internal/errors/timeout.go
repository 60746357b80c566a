package errors

var ErrStoreTimeout = newException(KindTimeout, "store did not respond in time")
