package dto

import "time"

type SkillData struct {
	Name        string `json:"name" validate:"required,max=64"`
	Category    string `json:"category" validate:"max=64"`
	Proficiency string `json:"proficiency" validate:"omitempty,proficiency"`
	IsRequired  bool   `json:"isRequired"`
}

type LocationData struct {
	Lat     *float64 `json:"lat" validate:"required,latitude"`
	Lng     *float64 `json:"lng" validate:"required,longitude"`
	Address string   `json:"address" validate:"required,max=256"`
	City    string   `json:"city" validate:"max=128"`
	State   string   `json:"state" validate:"max=128"`
}

type PaymentData struct {
	Rate     float64 `json:"rate" validate:"gt=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
	Type     string  `json:"paymentType" validate:"required,payment_type"`
	Method   string  `json:"paymentMethod" validate:"omitempty,payment_method"`
}

type TimelineData struct {
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Deadline      *time.Time `json:"deadline"`
	IsFlexible    bool       `json:"isFlexible"`
	PreferredTime string     `json:"preferredTime" validate:"omitempty,preferred_time"`
}

// CreateGigRequest is the body of POST /gigs. Status, counters and
// lifecycle timestamps are never read from the client.
type CreateGigRequest struct {
	Title           string        `json:"title" validate:"required,max=200"`
	Description     string        `json:"description" validate:"required,max=5000"`
	Category        string        `json:"category" validate:"omitempty,category"`
	SubCategory     string        `json:"subCategory" validate:"max=64"`
	Skills          []SkillData   `json:"skills" validate:"max=20,dive"`
	ExperienceLevel string        `json:"experienceLevel" validate:"omitempty,experience_level"`
	Location        *LocationData `json:"location" validate:"required"`
	ServiceRadius   float64       `json:"serviceRadius" validate:"gte=0"`
	AllowsRemote    bool          `json:"allowsRemote"`
	Payment         *PaymentData  `json:"payment" validate:"required"`
	Timeline        TimelineData  `json:"timeline"`
	Urgency         string        `json:"urgency" validate:"omitempty,urgency"`
	ExpiresAt       *time.Time    `json:"expiresAt"`
	Draft           bool          `json:"draft"`
}

type CancelGigRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}
