package domain

import "errors"

// Application errors
var (
	// ErrQuotaStoreUnavailable the quota store could not answer; callers fail closed
	ErrQuotaStoreUnavailable = errors.New("quota store unavailable")

	// ErrUnknownFeature feature type outside the closed enum
	ErrUnknownFeature = errors.New("unknown feature type")
)
