package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
)

type eventApi struct {
	svc      *event.Service
	calSvc   *calendar.Service
	validate *validator.Validate
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := eventApi{
		svc:      deps.EventSvc,
		calSvc:   deps.CalendarSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/calendars/:id/events", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, editorMiddleware())

	eg := g.Group("/events", jwt)
	eg.PUT("/:id", api.update, editorMiddleware())
	eg.DELETE("/:id", api.destroy, editorMiddleware())
}

// resolveScope checks the calendar exists and translates an optional
// `term_id` query param into a date-window filter. A term belonging to a
// different calendar is treated as missing.
func resolveScope(ctx echo.Context, calSvc *calendar.Service) (calendar.Calendar, *calendar.Term, event.QueryFilter, error) {
	reqCtx := ctx.Request().Context()

	cal, err := calSvc.GetCalendarByID(reqCtx, ctx.Param("id"))
	if err != nil {
		return calendar.Calendar{}, nil, event.QueryFilter{}, errors.Wrap(err, "finding calendar by ID")
	}

	filter := event.QueryFilter{CalendarID: cal.ID}

	if termID := ctx.QueryParam("term_id"); termID != "" {
		term, err := calSvc.GetTermByID(reqCtx, termID)
		if err != nil {
			return calendar.Calendar{}, nil, event.QueryFilter{}, errors.Wrap(err, "finding term by ID")
		}
		if term.CalendarID != cal.ID {
			return calendar.Calendar{}, nil, event.QueryFilter{}, calendar.ErrTermNotFound
		}
		filter.From = term.Start
		filter.To = term.End
		return cal, &term, filter, nil
	}
	return cal, nil, filter, nil
}

// Handlers

func (api *eventApi) query(ctx echo.Context) error {
	_, _, filter, err := resolveScope(ctx, api.calSvc)
	if err != nil {
		return err
	}

	events, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) create(ctx echo.Context) error {
	cal, err := api.calSvc.GetCalendarByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding calendar by ID")
	}

	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	data.CalendarID = cal.ID
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	evt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (api *eventApi) update(ctx echo.Context) error {
	evt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding event by ID")
	}

	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.validate, evt); err != nil {
		return err
	}

	evt, err = api.svc.Update(ctx.Request().Context(), evt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "finding event by ID")
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
