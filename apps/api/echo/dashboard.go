package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-surveys/core/survey"
)

type dashboardApi struct {
	svc      *survey.Service
	validate *validator.Validate
}

// dashboardFallback is the list view served in place of a survey whose token could not be decoded.
type dashboardFallback struct {
	survey.Dashboard
	Selection *survey.Selection `json:"selection"`
	Error     string            `json:"error"`
}

func registerDashboardAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	identity echo.MiddlewareFunc,
	svc *survey.Service,
	validate *validator.Validate,
) {
	api := dashboardApi{
		svc:      svc,
		validate: validate,
	}

	dg := g.Group("/dashboard", jwt, identity)
	dg.GET("", api.dashboard)
	dg.GET("/teachers", api.teachers)
	dg.GET("/surveys/:"+tokenParam, api.survey)
	dg.POST("/tokens", api.token)
}

// Handlers

func (api *dashboardApi) dashboard(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	dash, err := api.svc.Dashboard(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "composing dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *dashboardApi) teachers(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	var query teachersQuery
	if err = ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to teachersQuery")
	}
	if err = api.validate.Struct(query); err != nil {
		return err
	}

	teachers, err := api.svc.Teachers(ctx.Request().Context(), id, query.Subject)
	if err != nil {
		return errors.Wrap(err, "listing teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *dashboardApi) survey(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.Survey(ctx.Request().Context(), id, surveyToken(ctx))
	if err == nil {
		return ctx.JSON(http.StatusOK, view)
	}
	if !survey.IsDecodeError(err) {
		return errors.Wrap(err, "selecting survey")
	}

	// unknown selection: back to the list
	dash, dErr := api.svc.Dashboard(ctx.Request().Context(), id)
	if dErr != nil {
		return errors.Wrap(dErr, "composing dashboard")
	}
	return ctx.JSON(http.StatusOK, dashboardFallback{Dashboard: dash, Error: err.Error()})
}

func (api *dashboardApi) token(ctx echo.Context) error {
	var data tokenRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to tokenRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	token, err := data.Token()
	if err != nil {
		return errors.Wrap(err, "encoding token")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"token": token})
}
