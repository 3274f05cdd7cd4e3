package call

import "errors"

// Sentinel errors for the wrapping core.
var (
	// ErrNilCallable is returned when a nil callable is wrapped or invoked.
	ErrNilCallable = errors.New("call: callable is nil")
)
