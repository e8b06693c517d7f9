package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/calendar"
)

type calendarApi struct {
	svc      *calendar.Service
	validate *validator.Validate
}

func registerCalendarAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := calendarApi{
		svc:      deps.CalendarSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/calendars", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, adminMiddleware())
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update, adminMiddleware())
	cg.DELETE("/:id", api.destroy, adminMiddleware())

	cg.GET("/:id/terms", api.queryTerms)
	cg.POST("/:id/terms", api.createTerm, adminMiddleware())

	tg := g.Group("/terms", jwt)
	tg.PUT("/:id", api.updateTerm, adminMiddleware())
	tg.DELETE("/:id", api.destroyTerm, adminMiddleware())
}

// Handlers

func (api *calendarApi) query(ctx echo.Context) error {
	cals, err := api.svc.QueryAllCalendars(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying calendars")
	}
	if cals == nil {
		cals = []calendar.Calendar{}
	}
	return ctx.JSON(http.StatusOK, cals)
}

func (api *calendarApi) create(ctx echo.Context) error {
	var data calendar.NewCalendar
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCalendar")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	cal, err := api.svc.CreateCalendar(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating calendar")
	}
	return ctx.JSON(http.StatusCreated, cal)
}

func (api *calendarApi) retrieve(ctx echo.Context) error {
	cal, err := api.svc.GetCalendarByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding calendar by ID")
	}
	return ctx.JSON(http.StatusOK, cal)
}

func (api *calendarApi) update(ctx echo.Context) error {
	cal, err := api.svc.GetCalendarByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding calendar by ID")
	}

	var data calendar.UpdateCalendar
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCalendar")
	}
	if err := data.Validate(api.validate, api.svc, cal); err != nil {
		return err
	}

	cal, err = api.svc.UpdateCalendar(ctx.Request().Context(), cal.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating calendar")
	}
	return ctx.JSON(http.StatusOK, cal)
}

func (api *calendarApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteCalendar(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting calendar")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *calendarApi) queryTerms(ctx echo.Context) error {
	if _, err := api.svc.GetCalendarByID(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "finding calendar by ID")
	}

	terms, err := api.svc.QueryTermsByCalendar(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying terms")
	}
	if terms == nil {
		terms = []calendar.Term{}
	}
	return ctx.JSON(http.StatusOK, terms)
}

func (api *calendarApi) createTerm(ctx echo.Context) error {
	var data calendar.NewTerm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTerm")
	}
	data.CalendarID = ctx.Param("id")
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	term, err := api.svc.CreateTerm(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating term")
	}
	return ctx.JSON(http.StatusCreated, term)
}

func (api *calendarApi) updateTerm(ctx echo.Context) error {
	term, err := api.svc.GetTermByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding term by ID")
	}

	var data calendar.UpdateTerm
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTerm")
	}
	if err := data.Validate(api.validate, api.svc, term); err != nil {
		return err
	}

	term, err = api.svc.UpdateTerm(ctx.Request().Context(), term.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating term")
	}
	return ctx.JSON(http.StatusOK, term)
}

func (api *calendarApi) destroyTerm(ctx echo.Context) error {
	if err := api.svc.DeleteTerm(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting term")
	}
	return ctx.NoContent(http.StatusNoContent)
}
