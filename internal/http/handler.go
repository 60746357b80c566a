package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	dto "gig-marketplace.com/gig-marketplace/internal/data_models"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
	"gig-marketplace.com/gig-marketplace/internal/http/validators"
	"gig-marketplace.com/gig-marketplace/internal/search"
	"gig-marketplace.com/gig-marketplace/internal/services"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

// HeaderUserID carries the caller's identity, resolved upstream.
const HeaderUserID = "X-User-ID"

type Handler struct {
	gigService         *services.GigService
	applicationService *services.ApplicationService
	searchService      *search.Service
	log                *logging.Logger
}

func NewHandler(
	gigService *services.GigService,
	applicationService *services.ApplicationService,
	searchService *search.Service,
	log *logging.Logger,
) *Handler {
	return &Handler{
		gigService:         gigService,
		applicationService: applicationService,
		searchService:      searchService,
		log:                log.With("component", "http"),
	}
}

func userID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(HeaderUserID)
	if id == "" {
		return "", apperrors.ErrMissingIdentity
	}
	return id, nil
}

func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Validation("invalid JSON payload")
	}
	return validators.Struct(req)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) CreateGig(c echo.Context) error {
	posterID, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.CreateGigRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	gig, err := h.gigService.CreateGig(c.Request().Context(), posterID, toGigInput(&req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, gig)
}

// GetGig counts a view and shows the ledger to the poster only; an
// applicant sees their own application.
func (h *Handler) GetGig(c echo.Context) error {
	ctx := c.Request().Context()

	gig, err := h.gigService.GetGig(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	h.gigService.RecordView(ctx, gig.ID)

	viewer := c.Request().Header.Get(HeaderUserID)
	if viewer != gig.PosterID {
		gig.Applications = ownApplications(gig.Applications, viewer)
	}

	return c.JSON(http.StatusOK, gig)
}

func (h *Handler) ListMyGigs(c echo.Context) error {
	posterID, err := userID(c)
	if err != nil {
		return err
	}

	status := constants.GigStatus(c.QueryParam("status"))
	gigs, err := h.gigService.ListByPoster(c.Request().Context(), posterID, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(gigs),
		"gigs":  gigs,
	})
}

func (h *Handler) PublishGig(c echo.Context) error {
	return h.lifecycle(c, h.gigService.PublishGig)
}

func (h *Handler) StartGig(c echo.Context) error {
	return h.lifecycle(c, h.gigService.StartGig)
}

func (h *Handler) CompleteGig(c echo.Context) error {
	return h.lifecycle(c, h.gigService.CompleteGig)
}

func (h *Handler) CancelGig(c echo.Context) error {
	actingUserID, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.CancelGigRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	gig, err := h.gigService.CancelGig(c.Request().Context(), c.Param("id"), actingUserID, req.Reason)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, gig)
}

type lifecycleFunc func(ctx context.Context, gigID, actingUserID string) (*model.Gig, error)

func (h *Handler) lifecycle(c echo.Context, op lifecycleFunc) error {
	actingUserID, err := userID(c)
	if err != nil {
		return err
	}

	gig, err := op(c.Request().Context(), c.Param("id"), actingUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, gig)
}

func ownApplications(apps []model.Application, applicantID string) []model.Application {
	if applicantID == "" {
		return nil
	}
	for _, a := range apps {
		if a.ApplicantID == applicantID {
			return []model.Application{a}
		}
	}
	return nil
}

func toGigInput(req *dto.CreateGigRequest) services.GigInput {
	in := services.GigInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		SubCategory:     req.SubCategory,
		ExperienceLevel: req.ExperienceLevel,
		ServiceRadius:   req.ServiceRadius,
		AllowsRemote:    req.AllowsRemote,
		Timeline: model.Timeline{
			StartDate:     req.Timeline.StartDate,
			EndDate:       req.Timeline.EndDate,
			Deadline:      req.Timeline.Deadline,
			IsFlexible:    req.Timeline.IsFlexible,
			PreferredTime: req.Timeline.PreferredTime,
		},
		Urgency:   constants.Urgency(req.Urgency),
		ExpiresAt: req.ExpiresAt,
		Draft:     req.Draft,
	}

	for _, s := range req.Skills {
		in.Skills = append(in.Skills, model.Skill{
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
			IsRequired:  s.IsRequired,
		})
	}

	if l := req.Location; l != nil && l.Lat != nil && l.Lng != nil {
		in.Location = &model.Location{
			Lat:     *l.Lat,
			Lng:     *l.Lng,
			Address: l.Address,
			City:    l.City,
			State:   l.State,
		}
	}

	if p := req.Payment; p != nil {
		in.Payment = &model.Payment{
			Rate:     p.Rate,
			Currency: p.Currency,
			Type:     p.Type,
			Method:   p.Method,
		}
	}

	return in
}
