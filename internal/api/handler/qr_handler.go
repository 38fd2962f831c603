package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartadmin/user-api/internal/api/metrics"
	"github.com/smartadmin/user-api/internal/core/ports"
)

// QRHandler handles the ephemeral QR login flow.
type QRHandler struct {
	authService ports.AuthService
}

func NewQRHandler(authService ports.AuthService) *QRHandler {
	return &QRHandler{authService: authService}
}

// Generate issues a short-lived token for the caller and renders it as a QR
// image.
//
// @Summary      Generate a QR login token for the caller
// @Tags         qr
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  generateQRResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /qr/generate [get]
func (h *QRHandler) Generate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	qr, err := h.authService.GenerateQR(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("short_lived").Inc()

	return c.JSON(http.StatusOK, generateQRResponse{QRImage: qr.Image, Token: qr.Token})
}

// Validate redeems a QR token. No auth required — the token itself is the
// credential.
//
// @Summary      Validate a QR login token
// @Tags         qr
// @Accept       json
// @Produce      json
// @Param        body  body      validateQRRequest  true  "QR token"
// @Success      200   {object}  validateQRResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /qr/validate [post]
func (h *QRHandler) Validate(c echo.Context) error {
	var req validateQRRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no token provided")
	}

	identity, err := h.authService.ValidateQR(c.Request().Context(), req.Token)
	if err != nil {
		metrics.QRValidationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	metrics.QRValidationsTotal.WithLabelValues("valid").Inc()

	return c.JSON(http.StatusOK, validateQRResponse{
		UserID: identity.UserID,
		Role:   string(identity.Role),
	})
}
