package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
)

const maxMessageLength = 1000

func validateGigInput(in GigInput, now time.Time) error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Validation("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperrors.Validation("description is required")
	}

	if in.Location == nil {
		return apperrors.Validation("location is required")
	}
	if strings.TrimSpace(in.Location.Address) == "" {
		return apperrors.Validation("location.address is required")
	}
	if in.Location.Lat < -90 || in.Location.Lat > 90 || in.Location.Lng < -180 || in.Location.Lng > 180 {
		return apperrors.Validation("location coordinates are out of range")
	}

	if in.Payment == nil {
		return apperrors.Validation("payment is required")
	}
	if in.Payment.Rate <= 0 {
		return apperrors.Validation("payment.rate must be positive")
	}
	if !constants.OneOf(in.Payment.Type, constants.PaymentTypes) {
		return apperrors.Validation("payment.paymentType must be one of %s", strings.Join(constants.PaymentTypes, ", "))
	}
	if in.Payment.Method != "" && !constants.OneOf(in.Payment.Method, constants.PaymentMethods) {
		return apperrors.Validation("payment.paymentMethod must be one of %s", strings.Join(constants.PaymentMethods, ", "))
	}

	if in.Category != "" && !constants.OneOf(in.Category, constants.Categories) {
		return apperrors.Validation("unknown category %q", in.Category)
	}
	if in.ExperienceLevel != "" && !constants.OneOf(in.ExperienceLevel, constants.ExperienceLevels) {
		return apperrors.Validation("unknown experienceLevel %q", in.ExperienceLevel)
	}
	if in.Urgency != "" && !in.Urgency.Valid() {
		return apperrors.Validation("unknown urgency %q", in.Urgency)
	}
	if in.ServiceRadius < 0 {
		return apperrors.Validation("serviceRadius must not be negative")
	}

	for _, sk := range in.Skills {
		if strings.TrimSpace(sk.Name) == "" {
			return apperrors.Validation("skill name is required")
		}
		if sk.Proficiency != "" && !constants.OneOf(sk.Proficiency, constants.Proficiencies) {
			return apperrors.Validation("unknown proficiency %q for skill %s", sk.Proficiency, sk.Name)
		}
	}

	tl := in.Timeline
	if tl.StartDate != nil && tl.EndDate != nil && !tl.StartDate.Before(*tl.EndDate) {
		return apperrors.Validation("timeline.startDate must be before timeline.endDate")
	}
	if tl.Deadline != nil && tl.Deadline.Before(now) {
		return apperrors.Validation("timeline.deadline is in the past")
	}
	if tl.PreferredTime != "" && !constants.OneOf(tl.PreferredTime, constants.PreferredTimes) {
		return apperrors.Validation("unknown preferredTime %q", tl.PreferredTime)
	}

	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return apperrors.Validation("expiresAt is in the past")
	}

	return nil
}

func validateApplicationInput(in ApplicationInput) error {
	if in.ProposedRate != nil && *in.ProposedRate <= 0 {
		return apperrors.Validation("proposedRate must be positive")
	}
	if utf8.RuneCountInString(in.Message) > maxMessageLength {
		return apperrors.Validation("message must be at most %d characters", maxMessageLength)
	}
	return nil
}
