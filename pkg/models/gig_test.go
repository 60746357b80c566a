package model

import (
	"strings"
	"testing"
	"time"

	"gig-marketplace.com/gig-marketplace/internal/constants"
)

func assignedGig() *Gig {
	g := &Gig{
		ID:         "gig-1",
		PosterID:   "poster",
		Status:     constants.GigStatusAssigned,
		AssignedTo: "b",
		Applications: []Application{
			{ID: "app-b", ApplicantID: "b", Status: constants.ApplicationAccepted},
			{ID: "app-c", ApplicantID: "c", Status: constants.ApplicationRejected},
		},
	}
	g.RecountApplications()
	return g
}

func TestCheckInvariants_Valid(t *testing.T) {
	if err := assignedGig().CheckInvariants(); err != nil {
		t.Fatalf("expected valid gig, got %v", err)
	}

	posted := &Gig{ID: "gig-2", PosterID: "poster", Status: constants.GigStatusPosted}
	if err := posted.CheckInvariants(); err != nil {
		t.Fatalf("expected empty posted gig to be valid, got %v", err)
	}
}

func TestCheckInvariants_Violations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(g *Gig)
		want   string
	}{
		{"stale count", func(g *Gig) { g.ApplicationsCount = 5 }, "applicationsCount"},
		{"poster applied", func(g *Gig) { g.Applications[1].ApplicantID = "poster" }, "belongs to the poster"},
		{"duplicate applicant", func(g *Gig) { g.Applications[1].ApplicantID = "b" }, "applied twice"},
		{"two accepted", func(g *Gig) { g.Applications[1].Status = constants.ApplicationAccepted }, "more than one accepted"},
		{"assigned without accepted", func(g *Gig) {
			g.Applications[0].Status = constants.ApplicationRejected
			g.AssignedTo = ""
		}, "without an accepted application"},
		{"assignee mismatch", func(g *Gig) { g.AssignedTo = "c" }, "does not match"},
		{"accepted while posted", func(g *Gig) { g.Status = constants.GigStatusPosted }, "accepted application on a posted gig"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := assignedGig()
			tc.mutate(g)
			err := g.CheckInvariants()
			if err == nil {
				t.Fatal("expected a violation")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestExpiredAt(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	g := &Gig{Status: constants.GigStatusPosted, ExpiresAt: now.Add(-time.Minute)}
	if !g.ExpiredAt(now) {
		t.Error("gig past expiresAt should be expired even while posted")
	}

	g.ExpiresAt = now.Add(time.Hour)
	if g.ExpiredAt(now) {
		t.Error("gig before expiresAt should not be expired")
	}
}

func TestLedgerLookups(t *testing.T) {
	g := assignedGig()
	if i, ok := g.ApplicationIndex("app-c"); !ok || i != 1 {
		t.Fatalf("ApplicationIndex(app-c) = %d, %v", i, ok)
	}
	if _, ok := g.ApplicationIndex("missing"); ok {
		t.Fatal("unexpected match for missing application")
	}
	if !g.HasApplicant("c") || g.HasApplicant("d") {
		t.Fatal("HasApplicant returned the wrong answer")
	}
	if n := g.CountApplications(constants.ApplicationAccepted); n != 1 {
		t.Fatalf("expected 1 accepted application, got %d", n)
	}
}
