package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartadmin/user-api/internal/core/domain"
	"github.com/smartadmin/user-api/internal/core/ports"
)

// ctxActor extracts the actor identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both claims must be
// present (presence proves the middleware ran) and the role must be one of
// the defined values — anything else is a structurally broken token.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || !domain.Role(role).Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: id, Role: domain.Role(role)}, nil
}
