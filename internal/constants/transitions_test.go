package constants

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to GigStatus
		want     bool
	}{
		{GigStatusDraft, GigStatusPosted, true},
		{GigStatusPosted, GigStatusAssigned, true},
		{GigStatusAssigned, GigStatusInProgress, true},
		{GigStatusInProgress, GigStatusCompleted, true},
		{GigStatusAssigned, GigStatusCompleted, true},
		{GigStatusPosted, GigStatusCancelled, true},
		{GigStatusAssigned, GigStatusCancelled, true},
		{GigStatusInProgress, GigStatusCancelled, true},
		{GigStatusPosted, GigStatusExpired, true},
		{GigStatusDraft, GigStatusAssigned, false},
		{GigStatusPosted, GigStatusCompleted, false},
		{GigStatusCompleted, GigStatusCancelled, false},
		{GigStatusCancelled, GigStatusPosted, false},
		{GigStatusExpired, GigStatusPosted, false},
		{GigStatusDraft, GigStatusCancelled, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestUrgencyScore(t *testing.T) {
	cases := map[Urgency]int{
		UrgencyUrgent: 4,
		UrgencyHigh:   3,
		UrgencyMedium: 2,
		UrgencyLow:    1,
		"":            2,
		"whenever":    2,
	}
	for u, want := range cases {
		if got := UrgencyScore(u); got != want {
			t.Errorf("UrgencyScore(%q) = %d, want %d", u, got, want)
		}
	}
}
