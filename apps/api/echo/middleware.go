package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/school"
)

func adminMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(school.RoleAdmin)
}

// roleMiddleware lets through authenticated users holding any of the
// given roles. Admins pass everywhere.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin || claimsHaveAnyRole(claims, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func claimsHaveAnyRole(claims Claims, roles []string) bool {
	for _, role := range roles {
		switch role {
		case school.RoleAdmin:
			if claims.IsAdmin {
				return true
			}
		case school.RoleReceptionist:
			if claims.IsReceptionist {
				return true
			}
		case school.RoleFaculty:
			if claims.IsFaculty {
				return true
			}
		}
	}
	return false
}
