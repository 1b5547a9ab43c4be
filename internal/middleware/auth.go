package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type Claims struct {
	UserID     string `json:"user_id"`
	TenantID   string `json:"tenant_id"`
	PharmacyID string `json:"pharmacy_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and puts the caller's identity
// into the request context.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.UserID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user id")
			}

			c.Set("user_id", claims.UserID)
			c.Set("tenant_id", claims.TenantID)
			c.Set("pharmacy_id", claims.PharmacyID)
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func TenantID(c echo.Context) string {
	id, _ := c.Get("tenant_id").(string)
	return id
}

func PharmacyID(c echo.Context) string {
	id, _ := c.Get("pharmacy_id").(string)
	return id
}
