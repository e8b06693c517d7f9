package exportsvc

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core"
)

const defaultPrintTimeout = 30 * time.Second

// Printer turns the rendered HTML document into a paginated landscape PDF
// using a headless Chromium instance.
type Printer struct {
	timeout time.Duration
}

func NewPrinter(conf *core.Config) *Printer {
	timeout := conf.Export.PrintTimeout
	if timeout <= 0 {
		timeout = defaultPrintTimeout
	}
	return &Printer{timeout: timeout}
}

// PrintPDF loads the HTML into a fresh tab, waits for the document's
// data-ready marker and prints it honoring the @page CSS (A4 landscape,
// one page per quarter).
func (p *Printer) PrintPDF(parentCtx context.Context, html []byte) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, p.timeout)
	defer timeoutCancel()

	var pdf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitVisible(`[data-ready="true"]`, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, errors.Wrap(err, "printing export document")
	}
	return pdf, nil
}
