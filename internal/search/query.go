package search

import (
	"time"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
)

// GeoPlan bounds the search to a circle around Center.
type GeoPlan struct {
	Center       repository.Point
	RadiusKm     float64
	RadiusMeters float64
}

// Plan is a Request translated into store calls.
//
// A plan without a point and without text terms is ordered and paged by the
// store. Otherwise the store returns the whole candidate set, which is then
// scored, ranked and paged in memory. With a point, the text terms never
// reach the store: the geo query is the primary filter and the terms filter
// its result.
type Plan struct {
	Filter repository.Filter
	Geo    *GeoPlan
	Terms  []string

	// Sort is the effective mode; distance without a point becomes relevance.
	Sort constants.SortMode

	Page   int
	Limit  int
	Offset int
}

// InMemory reports whether ranking and paging happen after the fetch.
func (p Plan) InMemory() bool {
	return p.Geo != nil || len(p.Terms) > 0
}

// Order returns the store ordering for plans that page in the store. Every
// ordering ends on id so equal keys never swap between pages.
func (p Plan) Order() []string {
	switch p.Sort {
	case constants.SortDate:
		return []string{"posted_at DESC", "id ASC"}
	case constants.SortRateHigh:
		return []string{"payment_rate DESC", "posted_at DESC", "id ASC"}
	case constants.SortRateLow:
		return []string{"payment_rate ASC", "posted_at DESC", "id ASC"}
	default:
		return []string{repository.UrgencyScoreSQL + " DESC", "posted_at DESC", "id ASC"}
	}
}

type Builder struct {
	now func() time.Time
}

func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Builder{now: now}
}

func (b *Builder) Build(req Request) (Plan, error) {
	req = req.normalize()
	if err := req.validate(); err != nil {
		return Plan{}, err
	}

	now := b.now()
	plan := Plan{
		Filter: repository.Filter{
			Statuses:        []constants.GigStatus{constants.GigStatusPosted},
			ActiveAt:        &now,
			Category:        req.Category,
			PaymentType:     req.PaymentType,
			Urgency:         req.Urgency,
			ExperienceLevel: req.ExperienceLevel,
			Skills:          req.Skills,
			MinRate:         req.MinRate,
			MaxRate:         req.MaxRate,
			LocationText:    req.Location,
		},
		Terms:  repository.Terms(req.Q),
		Sort:   req.Sort,
		Page:   req.Page,
		Limit:  req.Limit,
		Offset: (req.Page - 1) * req.Limit,
	}

	if req.HasGeo() {
		radiusKm := constants.DefaultRadiusKm
		if req.RadiusKm != nil {
			radiusKm = *req.RadiusKm
		}
		plan.Geo = &GeoPlan{
			Center:       repository.Point{Lat: *req.Lat, Lng: *req.Lng},
			RadiusKm:     radiusKm,
			RadiusMeters: radiusKm * 1000,
		}
	} else {
		plan.Filter.TextTerms = plan.Terms
		if plan.Sort == constants.SortDistance {
			plan.Sort = constants.SortRelevance
		}
	}

	return plan, nil
}
