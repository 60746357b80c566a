package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "gig-marketplace.com/gig-marketplace/internal/data_models"
	"gig-marketplace.com/gig-marketplace/internal/services"
	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

func (h *Handler) Apply(c echo.Context) error {
	applicantID, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	app, err := h.applicationService.Apply(c.Request().Context(), c.Param("id"), applicantID, services.ApplicationInput{
		ProposedRate:      req.ProposedRate,
		Message:           req.Message,
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, app)
}

func (h *Handler) ListApplications(c echo.Context) error {
	actingUserID, err := userID(c)
	if err != nil {
		return err
	}

	apps, err := h.applicationService.ListApplications(c.Request().Context(), c.Param("id"), actingUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(apps),
		"applications": apps,
	})
}

// ListMyApplications returns the gigs the caller applied to, each carrying
// only the caller's own application.
func (h *Handler) ListMyApplications(c echo.Context) error {
	applicantID, err := userID(c)
	if err != nil {
		return err
	}

	gigs, err := h.applicationService.ListByApplicant(c.Request().Context(), applicantID)
	if err != nil {
		return err
	}
	for i := range gigs {
		gigs[i].Applications = ownApplications(gigs[i].Applications, applicantID)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(gigs),
		"gigs":  gigs,
	})
}

func (h *Handler) AcceptApplication(c echo.Context) error {
	return h.ledger(c, h.applicationService.Accept)
}

func (h *Handler) RejectApplication(c echo.Context) error {
	return h.ledger(c, h.applicationService.Reject)
}

func (h *Handler) WithdrawApplication(c echo.Context) error {
	return h.ledger(c, h.applicationService.Withdraw)
}

type ledgerFunc func(ctx context.Context, gigID, applicationID, actingUserID string) (*model.Gig, error)

func (h *Handler) ledger(c echo.Context, op ledgerFunc) error {
	actingUserID, err := userID(c)
	if err != nil {
		return err
	}

	gig, err := op(c.Request().Context(), c.Param("id"), c.Param("appId"), actingUserID)
	if err != nil {
		return err
	}

	if actingUserID != gig.PosterID {
		gig.Applications = ownApplications(gig.Applications, actingUserID)
	}
	return c.JSON(http.StatusOK, gig)
}
