package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"gig-marketplace.com/gig-marketplace/internal/constants"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
	"gig-marketplace.com/gig-marketplace/internal/search"
)

func (h *Handler) SearchGigs(c echo.Context) error {
	req, err := searchRequest(c)
	if err != nil {
		return err
	}

	res, err := h.searchService.Search(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, res)
}

// searchRequest reads GET /gigs/search parameters. Skills may repeat or be
// comma separated.
func searchRequest(c echo.Context) (search.Request, error) {
	req := search.Request{
		Q:               c.QueryParam("q"),
		Category:        c.QueryParam("category"),
		PaymentType:     c.QueryParam("paymentType"),
		Urgency:         constants.Urgency(c.QueryParam("urgency")),
		ExperienceLevel: c.QueryParam("experienceLevel"),
		Location:        c.QueryParam("location"),
		Sort:            constants.SortMode(c.QueryParam("sort")),
	}

	for _, raw := range c.QueryParams()["skills"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Skills = append(req.Skills, s)
			}
		}
	}

	b := echo.QueryParamsBinder(c)
	req.MinRate = optionalFloat(c, b, "minRate")
	req.MaxRate = optionalFloat(c, b, "maxRate")
	req.Lat = optionalFloat(c, b, "lat")
	req.Lng = optionalFloat(c, b, "lng")
	req.RadiusKm = optionalFloat(c, b, "radius")
	b.Int("page", &req.Page).Int("limit", &req.Limit)

	if err := b.BindError(); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return req, apperrors.Validation("invalid value for %s", be.Field)
		}
		return req, apperrors.Validation("invalid query parameters")
	}
	return req, nil
}

func optionalFloat(c echo.Context, b *echo.ValueBinder, name string) *float64 {
	if c.QueryParam(name) == "" {
		return nil
	}
	v := new(float64)
	b.Float64(name, v)
	return v
}
