package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nft-maker-one/twitter-clone/internal/models"
	"github.com/nft-maker-one/twitter-clone/internal/repositories"
	"github.com/nft-maker-one/twitter-clone/pkg/firebase"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   firebase.TokenVerifier
	jwtSecret      string
	jwtTTL         time.Duration
	log            *zap.Logger
}

// NewAuthHandler creates a new AuthHandler. firebaseAuth may be nil, which
// disables Firebase login.
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuth firebase.TokenVerifier, jwtSecret string, jwtTTL time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuth,
		jwtSecret:      jwtSecret,
		jwtTTL:         jwtTTL,
		log:            log,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/wallet-login", h.WalletLogin)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Register creates a local account and returns a token for it
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userRepository.CreateUser(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.respondWithToken(c, http.StatusCreated, user)
}

// Login authenticates with username or email plus password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userRepository.ValidateCredential(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return err
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

// WalletLogin signs in by wallet address, creating the account on first use
func (h *AuthHandler) WalletLogin(c echo.Context) error {
	var req models.WalletLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, created, err := h.userRepository.FindOrCreateByWallet(c.Request().Context(), req.WalletAddress)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.log.Info("wallet user created", zap.Uint("user_id", user.ID))
	}
	return h.respondWithToken(c, status, user)
}

// FirebaseLogin handles Firebase ID token verification and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "Firebase login is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	identity, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	user, err := h.userRepository.FindOrCreateByFirebase(ctx, identity.UID, identity.Email, identity.Name)
	if err != nil {
		return err
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, user *models.User) error {
	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(status, models.AuthResponse{Token: token, User: user})
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(h.jwtTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
