package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
	"github.com/trezcool/ratiba/core/schedule"
	exportsvc "github.com/trezcool/ratiba/services/export"
	icssvc "github.com/trezcool/ratiba/services/ics"
)

type reportApi struct {
	calSvc  *calendar.Service
	evtSvc  *event.Service
	printer *exportsvc.Printer
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reportApi{
		calSvc:  deps.CalendarSvc,
		evtSvc:  deps.EventSvc,
		printer: deps.Printer,
	}

	cg := g.Group("/calendars/:id", jwt)
	cg.GET("/dashboard", api.dashboard)
	cg.GET("/grid", api.grid)
	cg.GET("/export", api.export)
	cg.GET("/ics", api.icsFeed)
}

// Handlers

func (api *reportApi) dashboard(ctx echo.Context) error {
	_, _, filter, err := resolveScope(ctx, api.calSvc)
	if err != nil {
		return err
	}

	events, err := api.evtSvc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	return ctx.JSON(http.StatusOK, schedule.Summarize(events))
}

type (
	GridMonth struct {
		Month int             `json:"month"`
		Name  string          `json:"name"`
		Weeks []schedule.Week `json:"weeks"`
	}

	GridResponse struct {
		Year     int         `json:"year"`
		Weekdays [7]string   `json:"weekdays"`
		Months   []GridMonth `json:"months"`
	}
)

func (api *reportApi) grid(ctx echo.Context) error {
	_, _, filter, err := resolveScope(ctx, api.calSvc)
	if err != nil {
		return err
	}

	events, err := api.evtSvc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}

	year := schedule.DominantYear(events)
	idx := schedule.BuildDayIndex(schedule.FilterYear(events, year))

	resp := GridResponse{
		Year:     year,
		Weekdays: schedule.WeekdayNames,
		Months:   make([]GridMonth, 0, 12),
	}
	for _, months := range schedule.Quarters {
		for _, month := range months {
			resp.Months = append(resp.Months, GridMonth{
				Month: int(month),
				Name:  schedule.MonthNames[month-1],
				Weeks: schedule.BuildMonthGrid(year, month, idx),
			})
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *reportApi) export(ctx echo.Context) error {
	cal, term, filter, err := resolveScope(ctx, api.calSvc)
	if err != nil {
		return err
	}

	events, err := api.evtSvc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}

	doc := exportsvc.BuildDocument(cal, term, events)
	html, err := exportsvc.RenderHTML(doc)
	if err != nil {
		return errors.Wrap(err, "rendering document HTML")
	}
	pdf, err := api.printer.PrintPDF(ctx.Request().Context(), html)
	if err != nil {
		return errors.Wrap(err, "printing document PDF")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, exportsvc.Filename(cal, term)))
	return ctx.Blob(http.StatusOK, "application/pdf", pdf)
}

func (api *reportApi) icsFeed(ctx echo.Context) error {
	cal, err := api.calSvc.GetCalendarByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding calendar by ID")
	}

	events, err := api.evtSvc.Filter(ctx.Request().Context(), event.QueryFilter{CalendarID: cal.ID})
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(icssvc.BuildFeed(cal, events)))
}
