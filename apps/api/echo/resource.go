package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core/analytics"
	"github.com/greencampus/greencampus/core/resource"
	"github.com/greencampus/greencampus/core/user"
)

type resourceApi struct {
	auth   *authenticator
	svc    *resource.Service
	engine *analytics.Engine
}

func registerResourceAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	auth *authenticator,
	svc *resource.Service,
	engine *analytics.Engine,
) {
	api := resourceApi{auth: auth, svc: svc, engine: engine}

	rg := g.Group("/resources", jwt, requireCapability(auth, user.CapManageOwnRecords))
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/analytics", api.analytics)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *resourceApi) create(ctx echo.Context) error {
	actor, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	var data resource.NewRecord
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}

	rec, err := api.svc.Create(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "creating record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *resourceApi) query(ctx echo.Context) error {
	actor, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	q := periodQuery(ctx)

	entries, err := api.svc.Query(ctx.Request().Context(), actor, resource.NewFilter(q.Month, q.Year))
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *resourceApi) analytics(ctx echo.Context) error {
	actor, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	stats, err := api.engine.Analytics(ctx.Request().Context(), actor)
	if err != nil {
		return errors.Wrap(err, "aggregating records")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *resourceApi) update(ctx echo.Context) error {
	actor, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	var data resource.UpdateRecord
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}

	rec, err := api.svc.Update(ctx.Request().Context(), actor, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	actor, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), actor, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting record")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Resource deleted"})
}
