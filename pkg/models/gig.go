package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"gig-marketplace.com/gig-marketplace/internal/constants"
)

type Skill struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Proficiency string `json:"proficiency,omitempty"`
	IsRequired  bool   `json:"isRequired"`
}

type Location struct {
	Lng     float64 `gorm:"not null;index:idx_location_point,priority:2" json:"lng"`
	Lat     float64 `gorm:"not null;index:idx_location_point,priority:1" json:"lat"`
	Address string  `json:"address"`
	City    string  `json:"city,omitempty"`
	State   string  `json:"state,omitempty"`
}

type Payment struct {
	Rate     float64 `gorm:"not null;index:idx_rate_status,priority:1" json:"rate"`
	Currency string  `gorm:"size:8" json:"currency"`
	Type     string  `gorm:"size:20" json:"paymentType"`
	Method   string  `gorm:"size:20" json:"paymentMethod,omitempty"`
}

type Timeline struct {
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	IsFlexible    bool       `json:"isFlexible"`
	PreferredTime string     `gorm:"size:20" json:"preferredTime,omitempty"`
}

// Gig is the aggregate root: applications live inside the gig row and are
// only ever written together with it.
type Gig struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	PosterID string `gorm:"size:64;not null;index:idx_poster_status,priority:1;<-:create" json:"posterId"`

	Title           string                     `gorm:"not null" json:"title"`
	Description     string                     `gorm:"not null" json:"description"`
	Category        string                     `gorm:"size:32;index:idx_category_status,priority:1" json:"category"`
	SubCategory     string                     `gorm:"size:64" json:"subCategory,omitempty"`
	Skills          datatypes.JSONSlice[Skill] `json:"skills"`
	ExperienceLevel string                     `gorm:"size:20" json:"experienceLevel,omitempty"`

	Location      Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	ServiceRadius float64  `json:"serviceRadius,omitempty"`
	AllowsRemote  bool     `json:"allowsRemote"`

	Payment  Payment  `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	Timeline Timeline `gorm:"embedded;embeddedPrefix:timeline_" json:"timeline"`

	Status             constants.GigStatus `gorm:"type:varchar(20);not null;index:idx_status_posted,priority:1;index:idx_category_status,priority:2;index:idx_poster_status,priority:2;index:idx_rate_status,priority:2" json:"status"`
	Urgency            constants.Urgency   `gorm:"type:varchar(10);not null;default:medium;index:idx_urgency_posted,priority:1" json:"urgency"`
	PostedAt           time.Time           `gorm:"index:idx_status_posted,priority:2;index:idx_urgency_posted,priority:2" json:"postedAt,omitzero"`
	ExpiresAt          time.Time           `gorm:"index" json:"expiresAt,omitzero"`
	StartedAt          *time.Time          `json:"startedAt,omitempty"`
	CompletionDate     *time.Time          `json:"completionDate,omitempty"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty"`
	CancellationReason string              `json:"cancellationReason,omitempty"`
	AssignedTo         string              `gorm:"size:64" json:"assignedTo,omitempty"`

	Views             int64                            `gorm:"not null;default:0" json:"views"`
	ApplicationsCount int                              `gorm:"not null;default:0" json:"applicationsCount"`
	Applications      datatypes.JSONSlice[Application] `json:"applications,omitempty"`

	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ApplicationIndex returns the ledger position of the application with the
// given id.
func (g *Gig) ApplicationIndex(applicationID string) (int, bool) {
	for i := range g.Applications {
		if g.Applications[i].ID == applicationID {
			return i, true
		}
	}
	return -1, false
}

func (g *Gig) HasApplicant(applicantID string) bool {
	for _, a := range g.Applications {
		if a.ApplicantID == applicantID {
			return true
		}
	}
	return false
}

func (g *Gig) CountApplications(status constants.ApplicationStatus) int {
	n := 0
	for _, a := range g.Applications {
		if a.Status == status {
			n++
		}
	}
	return n
}

func (g *Gig) RecountApplications() {
	g.ApplicationsCount = len(g.Applications)
}

// ExpiredAt reports whether a posted gig is past its expiry, whether or not
// the sweep has flipped its status yet.
func (g *Gig) ExpiredAt(now time.Time) bool {
	if g.Status == constants.GigStatusExpired {
		return true
	}
	return !g.ExpiresAt.IsZero() && g.ExpiresAt.Before(now)
}

// CheckInvariants validates the aggregate before it is written.
func (g *Gig) CheckInvariants() error {
	var violations []string

	if g.ApplicationsCount != len(g.Applications) {
		violations = append(violations, fmt.Sprintf("applicationsCount %d != %d applications", g.ApplicationsCount, len(g.Applications)))
	}

	seen := make(map[string]struct{}, len(g.Applications))
	var accepted *Application
	for i := range g.Applications {
		a := &g.Applications[i]
		if a.ApplicantID == g.PosterID {
			violations = append(violations, fmt.Sprintf("application %s belongs to the poster", a.ID))
		}
		if _, dup := seen[a.ApplicantID]; dup {
			violations = append(violations, fmt.Sprintf("applicant %s applied twice", a.ApplicantID))
		}
		seen[a.ApplicantID] = struct{}{}
		if a.Status == constants.ApplicationAccepted {
			if accepted != nil {
				violations = append(violations, "more than one accepted application")
			}
			accepted = a
		}
	}

	switch {
	case g.Status == constants.GigStatusAssigned && accepted == nil:
		violations = append(violations, "assigned gig without an accepted application")
	case accepted != nil && g.AssignedTo != accepted.ApplicantID:
		violations = append(violations, fmt.Sprintf("assignedTo %q does not match accepted applicant %q", g.AssignedTo, accepted.ApplicantID))
	case accepted == nil && g.AssignedTo != "":
		violations = append(violations, "assignedTo set without an accepted application")
	}

	if accepted != nil {
		switch g.Status {
		case constants.GigStatusAssigned, constants.GigStatusInProgress,
			constants.GigStatusCompleted, constants.GigStatusCancelled:
		default:
			violations = append(violations, fmt.Sprintf("accepted application on a %s gig", g.Status))
		}
	}

	if len(violations) > 0 {
		return fmt.Errorf("gig %s: %s", g.ID, strings.Join(violations, "; "))
	}
	return nil
}
