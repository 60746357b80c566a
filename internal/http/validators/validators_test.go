package validators

import (
	"errors"
	"strings"
	"testing"

	dto "gig-marketplace.com/gig-marketplace/internal/data_models"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
)

func f(v float64) *float64 { return &v }

func validGig() dto.CreateGigRequest {
	return dto.CreateGigRequest{
		Title:       "Move a sofa",
		Description: "Third floor, no lift",
		Category:    "moving",
		Skills:      []dto.SkillData{{Name: "Lifting", Proficiency: "advanced"}},
		Location:    &dto.LocationData{Lat: f(12.9), Lng: f(77.6), Address: "4 Church St"},
		Payment:     &dto.PaymentData{Rate: 800, Type: "fixed", Method: "upi"},
		Urgency:     "urgent",
	}
}

func TestStruct_AcceptsValidGig(t *testing.T) {
	req := validGig()
	if err := Struct(&req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestStruct_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *dto.CreateGigRequest)
		field  string
	}{
		{"missing title", func(r *dto.CreateGigRequest) { r.Title = "" }, "title"},
		{"missing location", func(r *dto.CreateGigRequest) { r.Location = nil }, "location"},
		{"missing lat", func(r *dto.CreateGigRequest) { r.Location.Lat = nil }, "location.lat"},
		{"bad longitude", func(r *dto.CreateGigRequest) { r.Location.Lng = f(200) }, "location.lng"},
		{"zero rate", func(r *dto.CreateGigRequest) { r.Payment.Rate = 0 }, "payment.rate"},
		{"unknown payment type", func(r *dto.CreateGigRequest) { r.Payment.Type = "barter" }, "payment.paymentType"},
		{"unknown category", func(r *dto.CreateGigRequest) { r.Category = "astrology" }, "category"},
		{"unknown urgency", func(r *dto.CreateGigRequest) { r.Urgency = "asap" }, "urgency"},
		{"unknown proficiency", func(r *dto.CreateGigRequest) { r.Skills[0].Proficiency = "guru" }, "skills[0].proficiency"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validGig()
			c.mutate(&req)

			err := Struct(&req)
			if !errors.Is(err, apperrors.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), c.field+" ") {
				t.Fatalf("expected message about %s, got %q", c.field, err.Error())
			}
		})
	}
}

func TestStruct_ApplyRequest(t *testing.T) {
	ok := dto.ApplyRequest{ProposedRate: f(450), Message: "available tomorrow"}
	if err := Struct(&ok); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	bad := dto.ApplyRequest{ProposedRate: f(-1)}
	if err := Struct(&bad); !errors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
