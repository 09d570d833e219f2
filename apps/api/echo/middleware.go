package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/greencampus/greencampus/core/user"
)

// requireCapability lets the request through when the authenticated user's role holds `cap`.
// It must run after the JWT middleware.
func requireCapability(a *authenticator, cap user.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := a.contextUser(ctx)
			if err != nil {
				return err
			}
			if !usr.Can(cap) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// requireUser only loads the authenticated user.
func requireUser(a *authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, err := a.contextUser(ctx); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}
