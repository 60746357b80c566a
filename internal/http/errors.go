package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "gig-marketplace.com/gig-marketplace/internal/data_models"
	apperrors "gig-marketplace.com/gig-marketplace/internal/errors"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
)

// ErrorHandler renders every error as {"error": kind, "message": msg}.
func ErrorHandler(log *logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"err", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("failed to write error response", "err", err)
		}
	}
}

func render(err error) (int, dto.ErrorResponse) {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode, dto.ErrorResponse{Error: string(appErr.Kind), Message: appErr.Message}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, dto.ErrorResponse{Error: kindForStatus(httpErr.Code), Message: fmt.Sprint(httpErr.Message)}
	}

	return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal_error", Message: "internal server error"}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return string(apperrors.KindValidation)
	case http.StatusNotFound:
		return string(apperrors.KindNotFound)
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusTooManyRequests:
		return "rate_limited"
	default:
		return "http_error"
	}
}
