package render

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var ErrNoChromium = errors.New("no chromium binary found")

const pdfTimeout = 30 * time.Second

// PDFRenderer prints HTML documents to PDF with a local headless Chromium.
type PDFRenderer struct {
	chromePath string
}

// NewPDFRenderer uses chromePath, or probes the usual install locations when
// it is empty.
func NewPDFRenderer(chromePath string) *PDFRenderer {
	if chromePath == "" {
		chromePath = DetectChromePath()
	}
	return &PDFRenderer{chromePath: chromePath}
}

func (r *PDFRenderer) ChromePath() string { return r.chromePath }

// Render prints htmlDoc as an A4 PDF with a page-number footer.
func (r *PDFRenderer) Render(ctx context.Context, htmlDoc string) ([]byte, error) {
	if r.chromePath == "" {
		return nil, ErrNoChromium
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.ExecPath(r.chromePath),
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.5).
				WithMarginRight(0.5).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

// DetectChromePath returns the first Chromium or Chrome binary found in the
// common Linux and macOS locations, then on PATH, or "".
func DetectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return chromeOnPath()
}

func chromeOnPath() string {
	for _, name := range []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}
