package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartadmin/user-api/internal/api/metrics"
	"github.com/smartadmin/user-api/internal/core/domain"
	"github.com/smartadmin/user-api/internal/core/ports"
)

// RateLimiter bounds login attempts per caller at the HTTP boundary.
type RateLimiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// AuthHandler handles login and the authenticated-profile endpoint.
type AuthHandler struct {
	authService ports.AuthService
	limiter     RateLimiter
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, limiter RateLimiter, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, logger: logger}
}

// Login authenticates a document/password pair and returns a bearer token.
//
// @Summary      Login with document number and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Boundary rate limit. A limiter outage must not take logins down with
	// it, so errors log and let the attempt through.
	allowed, err := h.limiter.Allow(c.Request().Context(), req.Document)
	if err != nil {
		h.logger.Warn().Err(err).Msg("login rate limiter unavailable, allowing attempt")
	} else if !allowed {
		metrics.LoginsRateLimitedTotal.Inc()
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Document, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("standard").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Message:     "login successful",
		AccessToken: result.Token,
		User:        toUserResponse(result.User),
	})
}

// Me returns the profile of the authenticated caller.
//
// @Summary      Get the logged-in user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.authService.LoggedUser(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(u *domain.User) userResponse {
	if u == nil {
		return userResponse{}
	}
	return userResponse{
		ID:           u.ID,
		DocumentType: string(u.DocumentType),
		Role:         string(u.Role),
		Name:         u.Name,
		LastName1:    u.LastName1,
		LastName2:    u.LastName2,
		Email:        u.Email,
		Phone:        u.Phone,
	}
}
