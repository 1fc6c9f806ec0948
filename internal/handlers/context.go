package handlers

import (
	"github.com/inkstream/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getClaimsFromContext returns the authenticated user's claims, or nil when
// the request carries no valid principal.
func getClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, or 0 when absent.
func getUserIDFromContext(c echo.Context) uint {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}
