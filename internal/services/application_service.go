package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

type ApplicationInput struct {
	ProposedRate      *float64
	Message           string
	EstimatedDuration string
}

// ApplicationService is the ledger of applications embedded in each gig.
// Every operation is a single read-modify-write of the owning gig.
type ApplicationService struct {
	repo    repository.GigStore
	retries int
	log     *logging.Logger
	now     func() time.Time
}

// NewApplicationService retries apply, reject and withdraw up to retries
// times when they lose a race. Accept never retries.
func NewApplicationService(repo repository.GigStore, retries int, log *logging.Logger) *ApplicationService {
	if retries < 0 {
		retries = 0
	}
	return &ApplicationService{
		repo:    repo,
		retries: retries,
		log:     log.With("component", "application_service"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *ApplicationService) Apply(ctx context.Context, gigID, applicantID string, in ApplicationInput) (*model.Application, error) {
	if applicantID == "" {
		return nil, apperrors.ErrMissingIdentity
	}
	if err := validateApplicationInput(in); err != nil {
		return nil, err
	}

	var created model.Application
	_, err := s.repo.Mutate(ctx, gigID, s.retries, func(g *model.Gig) error {
		now := s.now()
		if g.Status != constants.GigStatusPosted || g.ExpiredAt(now) {
			return apperrors.ErrGigNotOpen
		}
		if applicantID == g.PosterID {
			return apperrors.ErrSelfApplication
		}
		if g.HasApplicant(applicantID) {
			return apperrors.ErrDuplicateApplication
		}

		created = model.Application{
			ID:                uuid.NewString(),
			ApplicantID:       applicantID,
			AppliedAt:         now,
			Status:            constants.ApplicationPending,
			ProposedRate:      in.ProposedRate,
			Message:           strings.TrimSpace(in.Message),
			EstimatedDuration: in.EstimatedDuration,
		}
		g.Applications = append(g.Applications, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("application submitted", "gig_id", gigID, "application_id", created.ID, "applicant_id", applicantID)
	return &created, nil
}

// Accept assigns the gig to the application's applicant and rejects every
// other pending application in the same write. Two concurrent accepts on one
// gig cannot both succeed: the loser gets ErrOptimisticLock.
func (s *ApplicationService) Accept(ctx context.Context, gigID, applicationID, actingUserID string) (*model.Gig, error) {
	gig, err := s.repo.Mutate(ctx, gigID, 0, func(g *model.Gig) error {
		if err := requireOwner(g, actingUserID); err != nil {
			return err
		}
		target, err := pendingApplication(g, applicationID)
		if err != nil {
			return err
		}
		if err := transition(g, constants.GigStatusAssigned); err != nil {
			return err
		}

		now := s.now()
		target.Status = constants.ApplicationAccepted
		target.RespondedAt = &now
		g.AssignedTo = target.ApplicantID
		rejectPending(g, target.ID, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("application accepted", "gig_id", gigID, "application_id", applicationID, "assigned_to", gig.AssignedTo)
	return gig, nil
}

func (s *ApplicationService) Reject(ctx context.Context, gigID, applicationID, actingUserID string) (*model.Gig, error) {
	return s.repo.Mutate(ctx, gigID, s.retries, func(g *model.Gig) error {
		if err := requireOwner(g, actingUserID); err != nil {
			return err
		}
		target, err := pendingApplication(g, applicationID)
		if err != nil {
			return err
		}
		now := s.now()
		target.Status = constants.ApplicationRejected
		target.RespondedAt = &now
		return nil
	})
}

// Withdraw marks the application withdrawn. It stays in the ledger, so the
// applicant cannot apply to the same gig again.
func (s *ApplicationService) Withdraw(ctx context.Context, gigID, applicationID, applicantID string) (*model.Gig, error) {
	if applicantID == "" {
		return nil, apperrors.ErrMissingIdentity
	}
	return s.repo.Mutate(ctx, gigID, s.retries, func(g *model.Gig) error {
		i, ok := g.ApplicationIndex(applicationID)
		if !ok {
			return apperrors.ErrApplicationNotFound
		}
		target := &g.Applications[i]
		if target.ApplicantID != applicantID {
			return apperrors.ErrNotApplicant
		}
		if target.Status != constants.ApplicationPending {
			return apperrors.ErrNotPending
		}
		now := s.now()
		target.Status = constants.ApplicationWithdrawn
		target.RespondedAt = &now
		return nil
	})
}

// ListApplications shows the poster the whole ledger and anyone else only
// their own application.
func (s *ApplicationService) ListApplications(ctx context.Context, gigID, actingUserID string) ([]model.Application, error) {
	if actingUserID == "" {
		return nil, apperrors.ErrMissingIdentity
	}
	gig, err := s.repo.FindByID(ctx, gigID)
	if err != nil {
		return nil, err
	}
	if gig.PosterID == actingUserID {
		return gig.Applications, nil
	}

	own := make([]model.Application, 0, 1)
	for _, a := range gig.Applications {
		if a.ApplicantID == actingUserID {
			own = append(own, a)
		}
	}
	return own, nil
}

// ListByApplicant returns the gigs the user has applied to, most recently
// updated first.
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID string) ([]model.Gig, error) {
	if applicantID == "" {
		return nil, apperrors.ErrMissingIdentity
	}
	return s.repo.Find(ctx, repository.Filter{ApplicantID: applicantID}, []string{"updated_at desc", "id asc"}, 0, 0)
}

func pendingApplication(g *model.Gig, applicationID string) (*model.Application, error) {
	i, ok := g.ApplicationIndex(applicationID)
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	target := &g.Applications[i]
	if target.Status != constants.ApplicationPending {
		return nil, apperrors.ErrNotPending
	}
	return target, nil
}
