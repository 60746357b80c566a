package constants

type GigStatus string

const (
	GigStatusDraft      GigStatus = "draft"
	GigStatusPosted     GigStatus = "posted"
	GigStatusActive     GigStatus = "active"
	GigStatusAssigned   GigStatus = "assigned"
	GigStatusInProgress GigStatus = "in_progress"
	GigStatusCompleted  GigStatus = "completed"
	GigStatusCancelled  GigStatus = "cancelled"
	GigStatusExpired    GigStatus = "expired"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// UrgencyScore weights time-sensitive gigs for ranking. Unknown values
// score like medium.
func UrgencyScore(u Urgency) int {
	switch u {
	case UrgencyUrgent:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyLow:
		return 1
	default:
		return 2
	}
}

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}
