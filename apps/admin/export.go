package main

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/calendar"
	"github.com/trezcool/ratiba/core/event"
	exportsvc "github.com/trezcool/ratiba/services/export"
)

// export prints a calendar (optionally restricted to a term window) to a
// local PDF file.
func (cli *commandLine) export(calName, termName, out string) error {
	ctx := context.Background()

	cal, err := cli.findCalendar(ctx, calName)
	if err != nil {
		return err
	}

	var term *calendar.Term
	filter := event.QueryFilter{CalendarID: cal.ID}
	if termName != "" {
		if term, err = cli.findTerm(ctx, cal.ID, termName); err != nil {
			return err
		}
		filter.From = term.Start
		filter.To = term.End
	}

	events, err := cli.evtSvc.Filter(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}

	doc := exportsvc.BuildDocument(cal, term, events)
	html, err := exportsvc.RenderHTML(doc)
	if err != nil {
		return errors.Wrap(err, "rendering document HTML")
	}
	pdf, err := exportsvc.NewPrinter(cli.conf).PrintPDF(ctx, html)
	if err != nil {
		return errors.Wrap(err, "printing document PDF")
	}

	if out == "" {
		out = exportsvc.Filename(cal, term)
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return errors.Wrap(err, "writing PDF file")
	}
	logger.Printf("exported %s", out)
	return nil
}

func (cli *commandLine) findCalendar(ctx context.Context, name string) (calendar.Calendar, error) {
	name = core.CleanString(name)

	if err := cli.calSvc.MustAny(ctx); err != nil {
		return calendar.Calendar{}, err
	}
	cals, err := cli.calSvc.QueryAllCalendars(ctx)
	if err != nil {
		return calendar.Calendar{}, errors.Wrap(err, "querying calendars")
	}
	for _, cal := range cals {
		if cal.Name == name {
			return cal, nil
		}
	}
	return calendar.Calendar{}, calendar.ErrNotFound
}

func (cli *commandLine) findTerm(ctx context.Context, calendarID, name string) (*calendar.Term, error) {
	name = core.CleanString(name)

	terms, err := cli.calSvc.QueryTermsByCalendar(ctx, calendarID)
	if err != nil {
		return nil, errors.Wrap(err, "querying terms")
	}
	for i := range terms {
		if terms[i].Name == name {
			return &terms[i], nil
		}
	}
	return nil, calendar.ErrTermNotFound
}
