package model

import (
	"time"

	"gig-marketplace.com/gig-marketplace/internal/constants"
)

// Application is a value object owned by its Gig and stored inside the gig
// row. It has no table of its own.
type Application struct {
	ID                string                      `json:"id"`
	ApplicantID       string                      `json:"applicantId"`
	AppliedAt         time.Time                   `json:"appliedAt"`
	Status            constants.ApplicationStatus `json:"status"`
	ProposedRate      *float64                    `json:"proposedRate,omitempty"`
	Message           string                      `json:"message,omitempty"`
	EstimatedDuration string                      `json:"estimatedDuration,omitempty"`
	RespondedAt       *time.Time                  `json:"respondedAt,omitempty"`
}
