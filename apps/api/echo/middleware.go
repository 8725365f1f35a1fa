package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// identityMiddleware resolves the respondent of the JWT claims and stores it in the context.
func identityMiddleware(validate *validator.Validate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			id, err := claims.Identity()
			if err != nil {
				return errNotRespondent
			}
			if err = id.Validate(validate); err != nil {
				return errNotRespondent
			}
			ctx.Set(contextIdentityKey, id)
			return next(ctx)
		}
	}
}
