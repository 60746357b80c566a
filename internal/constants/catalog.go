package constants

type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortDate      SortMode = "date"
	SortRateHigh  SortMode = "rate_high"
	SortRateLow   SortMode = "rate_low"
	SortUrgency   SortMode = "urgency"
	SortDistance  SortMode = "distance"
)

func (s SortMode) Valid() bool {
	switch s {
	case SortRelevance, SortDate, SortRateHigh, SortRateLow, SortUrgency, SortDistance:
		return true
	}
	return false
}

var Categories = []string{
	"cleaning", "moving", "delivery", "handyman", "gardening",
	"tutoring", "pet_care", "tech_support", "event_help", "other",
}

var ExperienceLevels = []string{"entry", "intermediate", "expert"}

var PaymentTypes = []string{"hourly", "fixed", "daily"}

var PaymentMethods = []string{"cash", "upi", "bank_transfer", "wallet"}

var Proficiencies = []string{"beginner", "intermediate", "advanced", "expert"}

var PreferredTimes = []string{"morning", "afternoon", "evening", "flexible"}

// OneOf reports whether v is an element of set.
func OneOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
