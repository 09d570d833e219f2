package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/user"
)

type goalApi struct {
	svc *goal.Service
}

func registerGoalAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, svc *goal.Service) {
	api := goalApi{svc: svc}

	gg := g.Group("/goals", jwt, requireCapability(auth, user.CapManageGoals))
	gg.POST("", api.create)
	gg.GET("", api.query)
	gg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *goalApi) create(ctx echo.Context) error {
	var data goal.NewGoal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGoal")
	}
	gl, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating goal")
	}
	return ctx.JSON(http.StatusCreated, gl)
}

func (api *goalApi) query(ctx echo.Context) error {
	goals, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying goals")
	}
	return ctx.JSON(http.StatusOK, goals)
}

func (api *goalApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting goal")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted"})
}
