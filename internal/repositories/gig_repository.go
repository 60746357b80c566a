package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

type GigRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ GigStore = (*GigRepository)(nil)

// ErrOptimisticLock is returned by Mutate when the gig kept changing under it.
var ErrOptimisticLock = apperrors.ErrOptimisticLock

// NewGigRepository bounds every store call by timeout; zero disables the bound.
func NewGigRepository(db *gorm.DB, timeout time.Duration) *GigRepository {
	return &GigRepository{db: db, timeout: timeout}
}

func (r *GigRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrGigNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", apperrors.ErrStoreTimeout, err)
	}
	return err
}

func (r *GigRepository) Create(ctx context.Context, gig *model.Gig) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	gig.Version = 1
	gig.RecountApplications()
	if err := gig.CheckInvariants(); err != nil {
		return fmt.Errorf("refusing to store gig: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(gig).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *GigRepository) FindByID(ctx context.Context, id string) (*model.Gig, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var gig model.Gig
	if err := r.db.WithContext(ctx).First(&gig, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &gig, nil
}

func (r *GigRepository) Mutate(ctx context.Context, id string, retries int, fn func(g *model.Gig) error) (*model.Gig, error) {
	for attempt := 0; ; attempt++ {
		gig, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := fn(gig); err != nil {
			return nil, err
		}

		gig.RecountApplications()
		if err := gig.CheckInvariants(); err != nil {
			return nil, fmt.Errorf("refusing to store gig: %w", err)
		}

		err = r.update(ctx, gig)
		if err == nil {
			return gig, nil
		}
		if !errors.Is(err, ErrOptimisticLock) || attempt >= retries {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, translate(ctx.Err())
		}
	}
}

// update writes the lifecycle and ledger columns in one statement guarded by
// the version read earlier. Descriptive fields are immutable after creation
// and views are maintained separately by AddViews.
func (r *GigRepository) update(ctx context.Context, gig *model.Gig) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Gig{}).
		Where("id = ? AND version = ?", gig.ID, gig.Version).
		Updates(map[string]interface{}{
			"status":              gig.Status,
			"posted_at":           gig.PostedAt,
			"expires_at":          gig.ExpiresAt,
			"started_at":          gig.StartedAt,
			"completion_date":     gig.CompletionDate,
			"cancelled_at":        gig.CancelledAt,
			"cancellation_reason": gig.CancellationReason,
			"assigned_to":         gig.AssignedTo,
			"applications":        gig.Applications,
			"applications_count":  gig.ApplicationsCount,
			"updated_at":          now,
			"version":             gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return translate(res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	gig.Version++
	gig.UpdatedAt = now
	return nil
}

func (r *GigRepository) Find(ctx context.Context, f Filter, order []string, offset, limit int) ([]model.Gig, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := applyFilter(r.db.WithContext(ctx).Model(&model.Gig{}), f)
	for _, o := range order {
		q = q.Order(o)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var gigs []model.Gig
	if err := q.Find(&gigs).Error; err != nil {
		return nil, translate(err)
	}
	return gigs, nil
}

func (r *GigRepository) Count(ctx context.Context, f Filter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&model.Gig{}), f).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// Near returns every gig matching f within maxMeters of center, nearest
// first. A bounding box narrows the scan in SQL and the exact great-circle
// distance decides membership.
func (r *GigRepository) Near(ctx context.Context, center Point, maxMeters float64, f Filter) ([]GeoHit, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	box := boxAround(center, maxMeters)
	q := applyFilter(r.db.WithContext(ctx).Model(&model.Gig{}), f).
		Where("location_lat BETWEEN ? AND ?", box.minLat, box.maxLat)
	if !box.allLng {
		q = q.Where("location_lng BETWEEN ? AND ?", box.minLng, box.maxLng)
	}

	var candidates []model.Gig
	if err := q.Find(&candidates).Error; err != nil {
		return nil, translate(err)
	}

	hits := make([]GeoHit, 0, len(candidates))
	for _, g := range candidates {
		d := HaversineMeters(center, Point{Lat: g.Location.Lat, Lng: g.Location.Lng})
		if d <= maxMeters {
			hits = append(hits, GeoHit{Gig: g, DistanceMeters: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].DistanceMeters != hits[j].DistanceMeters {
			return hits[i].DistanceMeters < hits[j].DistanceMeters
		}
		return hits[i].Gig.ID < hits[j].Gig.ID
	})
	return hits, nil
}

// AddViews bumps the counter without touching version, so view traffic never
// makes a lifecycle mutation lose its race.
func (r *GigRepository) AddViews(ctx context.Context, id string, n int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.WithContext(ctx).Model(&model.Gig{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", n)).Error
	return translate(err)
}

func (r *GigRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&model.Gig{}).
		Where("status = ? AND expires_at < ?", constants.GigStatusPosted, now).
		Updates(map[string]interface{}{
			"status":     constants.GigStatusExpired,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}
