package repository

import (
	"context"
	"time"

	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

// GigStore is the persistence contract the lifecycle, ledger and search
// services depend on.
type GigStore interface {
	Create(ctx context.Context, gig *model.Gig) error
	FindByID(ctx context.Context, id string) (*model.Gig, error)

	// Mutate runs fn against the freshly loaded gig and writes the result
	// only if nobody else wrote the gig in between. A lost race is retried
	// up to retries times before ErrOptimisticLock is returned.
	Mutate(ctx context.Context, id string, retries int, fn func(g *model.Gig) error) (*model.Gig, error)

	Find(ctx context.Context, f Filter, order []string, offset, limit int) ([]model.Gig, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Near(ctx context.Context, center Point, maxMeters float64, f Filter) ([]GeoHit, error)

	AddViews(ctx context.Context, id string, n int64) error
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
