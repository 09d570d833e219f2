package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core/analytics"
	"github.com/greencampus/greencampus/core/dashboard"
	"github.com/greencampus/greencampus/core/user"
)

type dashboardApi struct {
	auth       *authenticator
	dashboards *dashboard.Assembler
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, dashboards *dashboard.Assembler) {
	api := dashboardApi{auth: auth, dashboards: dashboards}

	dg := g.Group("/dashboard", jwt)
	dg.GET("/student", api.student, requireCapability(auth, user.CapStudentDashboard))
	dg.GET("/faculty", api.faculty, requireCapability(auth, user.CapFacultyDashboard))
	dg.GET("/admin", api.admin, requireCapability(auth, user.CapAdminDashboard))
}

// Handlers

func (api *dashboardApi) student(ctx echo.Context) error {
	actor, err := api.auth.contextUser(ctx)
	if err != nil {
		return err
	}
	view, err := api.dashboards.Student(ctx.Request().Context(), actor)
	if err != nil {
		return errors.Wrap(err, "assembling student dashboard")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *dashboardApi) faculty(ctx echo.Context) error {
	q := periodQuery(ctx)
	view, err := api.dashboards.Faculty(ctx.Request().Context(), analytics.ParsePeriodFilter(q.Month, q.Year))
	if err != nil {
		return errors.Wrap(err, "assembling faculty dashboard")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *dashboardApi) admin(ctx echo.Context) error {
	view, err := api.dashboards.Admin(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "assembling admin dashboard")
	}
	return ctx.JSON(http.StatusOK, view)
}
