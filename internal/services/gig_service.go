package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
	"gig-marketplace.com/gig-marketplace/internal/queue"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

// GigInput carries the caller-supplied part of a new gig. Lifecycle fields
// and counters are always set by the service.
type GigInput struct {
	Title           string
	Description     string
	Category        string
	SubCategory     string
	Skills          []model.Skill
	ExperienceLevel string
	Location        *model.Location
	ServiceRadius   float64
	AllowsRemote    bool
	Payment         *model.Payment
	Timeline        model.Timeline
	Urgency         constants.Urgency
	ExpiresAt       *time.Time
	// Draft keeps the gig unpublished until PublishGig is called.
	Draft bool
}

type GigService struct {
	repo  repository.GigStore
	views queue.ViewCounter
	log   *logging.Logger
	now   func() time.Time
}

func NewGigService(repo repository.GigStore, views queue.ViewCounter, log *logging.Logger) *GigService {
	return &GigService{
		repo:  repo,
		views: views,
		log:   log.With("component", "gig_service"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *GigService) CreateGig(ctx context.Context, posterID string, in GigInput) (*model.Gig, error) {
	if posterID == "" {
		return nil, apperrors.ErrMissingIdentity
	}

	now := s.now()
	if err := validateGigInput(in, now); err != nil {
		return nil, err
	}

	gig := &model.Gig{
		ID:              uuid.NewString(),
		PosterID:        posterID,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		Category:        in.Category,
		SubCategory:     in.SubCategory,
		Skills:          in.Skills,
		ExperienceLevel: in.ExperienceLevel,
		Location:        *in.Location,
		ServiceRadius:   in.ServiceRadius,
		AllowsRemote:    in.AllowsRemote,
		Payment:         *in.Payment,
		Timeline:        normalizeTimeline(in.Timeline),
		Status:          constants.GigStatusDraft,
		Urgency:         in.Urgency,
	}
	if gig.Category == "" {
		gig.Category = "other"
	}
	if gig.Urgency == "" {
		gig.Urgency = constants.UrgencyMedium
	}
	if gig.Payment.Currency == "" {
		gig.Payment.Currency = constants.DefaultCurrency
	}
	if in.ExpiresAt != nil {
		gig.ExpiresAt = in.ExpiresAt.UTC()
	}

	if !in.Draft {
		publish(gig, now)
	}

	if err := s.repo.Create(ctx, gig); err != nil {
		return nil, err
	}

	s.log.Info("gig created", "gig_id", gig.ID, "poster_id", posterID, "status", gig.Status)
	return gig, nil
}

func (s *GigService) GetGig(ctx context.Context, gigID string) (*model.Gig, error) {
	return s.repo.FindByID(ctx, gigID)
}

// ListByPoster returns the poster's gigs, newest first, optionally narrowed
// to one status.
func (s *GigService) ListByPoster(ctx context.Context, posterID string, status constants.GigStatus) ([]model.Gig, error) {
	if posterID == "" {
		return nil, apperrors.ErrMissingIdentity
	}
	f := repository.Filter{PosterID: posterID}
	if status != "" {
		f.Statuses = []constants.GigStatus{status}
	}
	return s.repo.Find(ctx, f, []string{"created_at desc", "id asc"}, 0, 0)
}

func (s *GigService) PublishGig(ctx context.Context, gigID, actingUserID string) (*model.Gig, error) {
	return s.repo.Mutate(ctx, gigID, 0, func(g *model.Gig) error {
		if err := requireOwner(g, actingUserID); err != nil {
			return err
		}
		now := s.now()
		if !g.ExpiresAt.IsZero() && !g.ExpiresAt.After(now) {
			return apperrors.Validation("expiresAt is in the past")
		}
		if err := transition(g, constants.GigStatusPosted); err != nil {
			return err
		}
		publish(g, now)
		return nil
	})
}

func (s *GigService) StartGig(ctx context.Context, gigID, actingUserID string) (*model.Gig, error) {
	return s.repo.Mutate(ctx, gigID, 0, func(g *model.Gig) error {
		if err := requireOwner(g, actingUserID); err != nil {
			return err
		}
		if err := transition(g, constants.GigStatusInProgress); err != nil {
			return err
		}
		now := s.now()
		g.StartedAt = &now
		return nil
	})
}

func (s *GigService) CompleteGig(ctx context.Context, gigID, actingUserID string) (*model.Gig, error) {
	gig, err := s.repo.Mutate(ctx, gigID, 0, func(g *model.Gig) error {
		if err := requireOwner(g, actingUserID); err != nil {
			return err
		}
		if err := transition(g, constants.GigStatusCompleted); err != nil {
			return err
		}
		now := s.now()
		g.CompletionDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("gig completed", "gig_id", gig.ID, "assigned_to", gig.AssignedTo)
	return gig, nil
}

// CancelGig closes the gig and rejects every application still pending.
func (s *GigService) CancelGig(ctx context.Context, gigID, actingUserID, reason string) (*model.Gig, error) {
	gig, err := s.repo.Mutate(ctx, gigID, 0, func(g *model.Gig) error {
		if err := requireOwner(g, actingUserID); err != nil {
			return err
		}
		if err := transition(g, constants.GigStatusCancelled); err != nil {
			return err
		}
		now := s.now()
		g.CancelledAt = &now
		g.CancellationReason = strings.TrimSpace(reason)
		rejectPending(g, "", now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("gig cancelled", "gig_id", gig.ID)
	return gig, nil
}

// RecordView is best effort: a failure is logged and otherwise ignored.
func (s *GigService) RecordView(ctx context.Context, gigID string) {
	if err := s.views.Incr(ctx, gigID); err != nil {
		s.log.Warn("failed to record view", "gig_id", gigID, "err", err)
	}
}

func publish(g *model.Gig, now time.Time) {
	g.Status = constants.GigStatusPosted
	g.PostedAt = now
	if g.ExpiresAt.IsZero() {
		g.ExpiresAt = now.Add(constants.DefaultExpiry)
	}
}

func transition(g *model.Gig, to constants.GigStatus) error {
	if !constants.CanTransition(g.Status, to) {
		return apperrors.InvalidTransition(string(g.Status), string(to))
	}
	g.Status = to
	return nil
}

func requireOwner(g *model.Gig, actingUserID string) error {
	if actingUserID == "" {
		return apperrors.ErrMissingIdentity
	}
	if actingUserID != g.PosterID {
		return apperrors.ErrNotGigOwner
	}
	return nil
}

// rejectPending rejects every pending application except keep.
func rejectPending(g *model.Gig, keep string, now time.Time) {
	for i := range g.Applications {
		a := &g.Applications[i]
		if a.ID == keep || a.Status != constants.ApplicationPending {
			continue
		}
		a.Status = constants.ApplicationRejected
		a.RespondedAt = &now
	}
}

func normalizeTimeline(t model.Timeline) model.Timeline {
	utc := func(p *time.Time) *time.Time {
		if p == nil {
			return nil
		}
		v := p.UTC()
		return &v
	}
	t.StartDate = utc(t.StartDate)
	t.EndDate = utc(t.EndDate)
	t.Deadline = utc(t.Deadline)
	return t
}
