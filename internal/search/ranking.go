package search

import (
	"math"
	"sort"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

// Hit is one search result. Distance is in kilometres rounded to two
// decimals, never above the search radius, and only present for geo searches.
type Hit struct {
	model.Gig
	Distance *float64 `json:"distance,omitempty"`
	Score    float64  `json:"score,omitempty"`

	meters float64
}

func newHit(g model.Gig, terms []string) Hit {
	// The ledger is not part of a public listing.
	g.Applications = nil
	return Hit{Gig: g, Score: repository.TextScore(&g, terms)}
}

// setDistance records meters and the rounded km shown to callers. A
// non-positive radiusKm leaves the rounded value unclamped.
func (h *Hit) setDistance(meters, radiusKm float64) {
	h.meters = meters
	km := math.Round(meters/1000*100) / 100
	if radiusKm > 0 && km > radiusKm {
		km = radiusKm
	}
	h.Distance = &km
}

// Rank orders hits in place for mode. Ties always fall back to gig id so the
// ordering is total.
func Rank(hits []Hit, mode constants.SortMode) {
	less := lessFor(mode)
	sort.SliceStable(hits, func(i, j int) bool {
		if c := less(&hits[i], &hits[j]); c != 0 {
			return c < 0
		}
		return hits[i].ID < hits[j].ID
	})
}

type compareFunc func(a, b *Hit) int

func lessFor(mode constants.SortMode) compareFunc {
	switch mode {
	case constants.SortDate:
		return chain(byPostedDesc)
	case constants.SortRateHigh:
		return chain(byRateDesc, byPostedDesc)
	case constants.SortRateLow:
		return chain(byRateAsc, byPostedDesc)
	case constants.SortUrgency:
		return chain(byUrgencyDesc, byPostedDesc)
	case constants.SortDistance:
		return chain(byDistanceAsc, byUrgencyDesc)
	default:
		return chain(byScoreDesc, byUrgencyDesc, byPostedDesc)
	}
}

func chain(keys ...compareFunc) compareFunc {
	return func(a, b *Hit) int {
		for _, k := range keys {
			if c := k(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func byPostedDesc(a, b *Hit) int {
	return b.PostedAt.Compare(a.PostedAt)
}

func byRateDesc(a, b *Hit) int {
	return compareFloat(b.Payment.Rate, a.Payment.Rate)
}

func byRateAsc(a, b *Hit) int {
	return compareFloat(a.Payment.Rate, b.Payment.Rate)
}

func byUrgencyDesc(a, b *Hit) int {
	return constants.UrgencyScore(b.Urgency) - constants.UrgencyScore(a.Urgency)
}

func byDistanceAsc(a, b *Hit) int {
	return compareFloat(a.meters, b.meters)
}

func byScoreDesc(a, b *Hit) int {
	return compareFloat(b.Score, a.Score)
}
