package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		showDetail bool
		wantStatus int
		wantBody   string
	}{
		{"not found", apperrors.ErrPostNotFound, false, http.StatusNotFound, `{"error":"post not found"}`},
		{"wrapped not found", fmt.Errorf("load: %w", apperrors.ErrUserNotFound), false, http.StatusNotFound, `{"error":"load: not found: user not found"}`},
		{"validation", apperrors.Validation("content is required"), false, http.StatusBadRequest, `{"error":"content is required"}`},
		{"conflict", apperrors.ErrAlreadyFollowing, false, http.StatusBadRequest, `{"error":"already following this user"}`},
		{"unauthorized", apperrors.ErrInvalidCredentials, false, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{"forbidden", apperrors.ErrForbidden, false, http.StatusForbidden, `{"error":"forbidden"}`},
		{"transient", fmt.Errorf("%w: dial tcp", apperrors.ErrTransient), false, http.StatusServiceUnavailable, `{"error":"service temporarily unavailable"}`},
		{"internal hidden", errors.New("boom"), false, http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{"internal shown", errors.New("boom"), true, http.StatusInternalServerError, `{"error":"boom"}`},
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "short and stout"), false, http.StatusTeapot, `{"error":"short and stout"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zap.NewNop(), tt.showDetail)(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestStatusForUnclassified(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("x")))
	assert.Equal(t, http.StatusNotFound, StatusFor(apperrors.ErrNotFollowing))
}
