package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/logger"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrTransient):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// NewHTTPErrorHandler renders every error as {"error": message}. Messages of
// unclassified errors are only shown when showDetail is set.
func NewHTTPErrorHandler(log *zap.Logger, showDetail bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := http.StatusText(status)

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		default:
			status = StatusFor(err)
			switch {
			case status == http.StatusServiceUnavailable:
				msg = "service temporarily unavailable"
			case status != http.StatusInternalServerError:
				msg = apperrors.Message(err)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request error",
				zap.String("path", c.Path()),
				zap.Int("status", status),
				logger.Err(err))
			if showDetail {
				msg = err.Error()
			}
		}

		var respErr error
		if c.Request().Method == http.MethodHead {
			respErr = c.NoContent(status)
		} else {
			respErr = c.JSON(status, echo.Map{"error": msg})
		}
		if respErr != nil {
			log.Error("failed to write error response", zap.Error(respErr))
		}
	}
}
