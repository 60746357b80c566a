package search

import (
	"context"
	"time"

	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
)

type Result struct {
	Gigs       []Hit  `json:"gigs"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
	Sort       string `json:"sort"`
}

// Service answers searches. It holds no state between calls.
type Service struct {
	repo    repository.GigStore
	builder *Builder
	log     *logging.Logger
}

func NewService(repo repository.GigStore, log *logging.Logger) *Service {
	return &Service{
		repo:    repo,
		builder: NewBuilder(nil),
		log:     log.With("component", "search"),
	}
}

func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	plan, err := s.builder.Build(req)
	if err != nil {
		return nil, err
	}

	var (
		hits  []Hit
		total int64
	)
	if plan.InMemory() {
		hits, total, err = s.searchInMemory(ctx, plan)
	} else {
		hits, total, err = s.searchInStore(ctx, plan)
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug("search served",
		"q_terms", len(plan.Terms),
		"geo", plan.Geo != nil,
		"sort", plan.Sort,
		"total", total,
		"page", plan.Page,
	)

	return &Result{
		Gigs:       hits,
		Total:      total,
		Page:       plan.Page,
		Limit:      plan.Limit,
		TotalPages: totalPages(total, plan.Limit),
		Sort:       string(plan.Sort),
	}, nil
}

func (s *Service) searchInStore(ctx context.Context, plan Plan) ([]Hit, int64, error) {
	total, err := s.repo.Count(ctx, plan.Filter)
	if err != nil {
		return nil, 0, err
	}

	gigs, err := s.repo.Find(ctx, plan.Filter, plan.Order(), plan.Offset, plan.Limit)
	if err != nil {
		return nil, 0, err
	}

	hits := make([]Hit, 0, len(gigs))
	for _, g := range gigs {
		hits = append(hits, newHit(g, nil))
	}
	return hits, total, nil
}

// searchInMemory fetches every candidate, drops those the text terms do not
// match, ranks the rest and cuts out the requested page.
func (s *Service) searchInMemory(ctx context.Context, plan Plan) ([]Hit, int64, error) {
	var candidates []Hit

	if plan.Geo != nil {
		near, err := s.repo.Near(ctx, plan.Geo.Center, plan.Geo.RadiusMeters, plan.Filter)
		if err != nil {
			return nil, 0, err
		}
		candidates = make([]Hit, 0, len(near))
		for _, n := range near {
			h := newHit(n.Gig, plan.Terms)
			h.setDistance(n.DistanceMeters, plan.Geo.RadiusKm)
			candidates = append(candidates, h)
		}
	} else {
		gigs, err := s.repo.Find(ctx, plan.Filter, nil, 0, 0)
		if err != nil {
			return nil, 0, err
		}
		candidates = make([]Hit, 0, len(gigs))
		for _, g := range gigs {
			candidates = append(candidates, newHit(g, plan.Terms))
		}
	}

	if len(plan.Terms) > 0 {
		matched := candidates[:0]
		for _, h := range candidates {
			if h.Score > 0 {
				matched = append(matched, h)
			}
		}
		candidates = matched
	}

	Rank(candidates, plan.Sort)

	total := int64(len(candidates))
	return page(candidates, plan.Offset, plan.Limit), total, nil
}

func page(hits []Hit, offset, limit int) []Hit {
	if offset < 0 || offset >= len(hits) {
		return []Hit{}
	}
	end := offset + limit
	if end > len(hits) || end < offset {
		end = len(hits)
	}
	return hits[offset:end]
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// WithClock pins the clock used for the expiry baseline.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.builder = NewBuilder(now)
	return s
}
