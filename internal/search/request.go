package search

import (
	"math"
	"strings"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
)

// Request is a search as the caller expressed it. Nil pointers and empty
// strings mean "not given".
type Request struct {
	Q string

	Category        string
	Skills          []string
	MinRate         *float64
	MaxRate         *float64
	PaymentType     string
	Urgency         constants.Urgency
	ExperienceLevel string

	Lat      *float64
	Lng      *float64
	RadiusKm *float64
	Location string

	Sort  constants.SortMode
	Page  int
	Limit int
}

// HasGeo reports whether the request carries a complete point.
func (r Request) HasGeo() bool {
	return r.Lat != nil && r.Lng != nil
}

// maxPage keeps (page-1)*limit inside int for every allowed limit.
const maxPage = math.MaxInt / constants.MaxPageLimit

// normalize clamps paging, fills defaults and trims free text. It never fails.
func (r Request) normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Page > maxPage {
		r.Page = maxPage
	}
	switch {
	case r.Limit == 0:
		r.Limit = constants.DefaultPageLimit
	case r.Limit < constants.MinPageLimit:
		r.Limit = constants.MinPageLimit
	case r.Limit > constants.MaxPageLimit:
		r.Limit = constants.MaxPageLimit
	}
	if r.Sort == "" {
		r.Sort = constants.SortRelevance
	}

	r.Q = strings.TrimSpace(r.Q)
	r.Location = strings.TrimSpace(r.Location)

	skills := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	r.Skills = skills

	return r
}

func (r Request) validate() error {
	if !r.Sort.Valid() {
		return apperrors.Validation("unknown sort %q", r.Sort)
	}
	if r.Category != "" && !constants.OneOf(r.Category, constants.Categories) {
		return apperrors.Validation("unknown category %q", r.Category)
	}
	if r.PaymentType != "" && !constants.OneOf(r.PaymentType, constants.PaymentTypes) {
		return apperrors.Validation("unknown paymentType %q", r.PaymentType)
	}
	if r.ExperienceLevel != "" && !constants.OneOf(r.ExperienceLevel, constants.ExperienceLevels) {
		return apperrors.Validation("unknown experienceLevel %q", r.ExperienceLevel)
	}
	if r.Urgency != "" && !r.Urgency.Valid() {
		return apperrors.Validation("unknown urgency %q", r.Urgency)
	}

	if r.MinRate != nil && *r.MinRate < 0 {
		return apperrors.Validation("minRate must not be negative")
	}
	if r.MinRate != nil && r.MaxRate != nil && *r.MinRate > *r.MaxRate {
		return apperrors.Validation("minRate must not exceed maxRate")
	}

	if (r.Lat == nil) != (r.Lng == nil) {
		return apperrors.Validation("lat and lng must be given together")
	}
	if r.Lat != nil && (*r.Lat < -90 || *r.Lat > 90) {
		return apperrors.Validation("lat must be within [-90, 90]")
	}
	if r.Lng != nil && (*r.Lng < -180 || *r.Lng > 180) {
		return apperrors.Validation("lng must be within [-180, 180]")
	}
	if r.RadiusKm != nil && *r.RadiusKm <= 0 {
		return apperrors.Validation("radiusKm must be positive")
	}

	return nil
}
