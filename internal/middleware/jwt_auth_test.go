package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nft-maker-one/twitter-clone/internal/models"
)

const secret = "s3cret"

func sign(t *testing.T, method jwt.SigningMethod, key any, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestParseToken(t *testing.T) {
	claims, err := ParseToken(sign(t, jwt.SigningMethodHS256, []byte(secret), 7), secret)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)

	_, err = ParseToken(sign(t, jwt.SigningMethodHS256, []byte("other"), 7), secret)
	assert.Error(t, err)

	_, err = ParseToken(sign(t, jwt.SigningMethodHS256, []byte(secret), 0), secret)
	assert.Error(t, err)

	_, err = ParseToken(sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, 7), secret)
	assert.Error(t, err)
}

func TestJWTAuth(t *testing.T) {
	valid := sign(t, jwt.SigningMethodHS256, []byte(secret), 42)

	tests := []struct {
		name     string
		required bool
		header   string
		want     int
		wantUser uint
	}{
		{"required missing", true, "", http.StatusUnauthorized, 0},
		{"optional missing", false, "", http.StatusOK, 0},
		{"bad scheme", false, "Token " + valid, http.StatusUnauthorized, 0},
		{"bad token", false, "Bearer nope", http.StatusUnauthorized, 0},
		{"required valid", true, "Bearer " + valid, http.StatusOK, 42},
		{"lowercase scheme", false, "bearer " + valid, http.StatusOK, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen uint
			err := jwtAuth(secret, tt.required)(func(c echo.Context) error {
				seen = UserID(c)
				return c.NoContent(http.StatusOK)
			})(c)

			if tt.want == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, seen)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.want, he.Code)
		})
	}
}
