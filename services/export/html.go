package exportsvc

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/event"
	"github.com/trezcool/ratiba/core/schedule"
)

// Cell fill per resolved category (the original palette).
var cellColors = map[event.Type]string{
	event.TypeClass:   "#008542",
	event.TypeGeneric: "#F2AF00",
	event.TypeHoliday: "#D62828",
	event.TypeMeeting: "#006666",
}

//go:embed templates/document.gohtml
var templatesFS embed.FS

var docTemplate = template.Must(
	template.New("document.gohtml").
		Funcs(template.FuncMap{
			"cellColor": func(t event.Type) string { return cellColors[t] },
			"weekdays":  func() [7]string { return schedule.WeekdayNames },
		}).
		ParseFS(templatesFS, "templates/document.gohtml"),
)

// RenderHTML renders the document as a self-contained landscape HTML page,
// one print page per quarter.
func RenderHTML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, doc); err != nil {
		return nil, errors.Wrap(err, "rendering export document")
	}
	return buf.Bytes(), nil
}
