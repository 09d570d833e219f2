package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/user"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}

	// PeriodQuery holds the optional `month` & `year` query params.
	// They are kept as strings: values that are not integers are ignored.
	PeriodQuery struct {
		Month string
		Year  string
	}
)

func (lr *LoginRequest) Validate(v *core.Validator) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return v.Struct(lr)
}

func periodQuery(ctx echo.Context) PeriodQuery {
	return PeriodQuery{Month: ctx.QueryParam("month"), Year: ctx.QueryParam("year")}
}
