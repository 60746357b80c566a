package constants

import "time"

const (
	// DefaultExpiry applies when a gig is posted without an explicit expiresAt.
	DefaultExpiry = 30 * 24 * time.Hour

	DefaultRadiusKm = 10.0

	DefaultPageLimit = 20
	MinPageLimit     = 1
	MaxPageLimit     = 50

	DefaultCurrency = "INR"

	DefaultMutationRetries = 3
)
