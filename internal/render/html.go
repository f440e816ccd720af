// Package render turns the Markdown report into a standalone HTML document
// and, through headless Chromium, into PDF.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const reportCSS = "body{font-family:-apple-system,'Segoe UI',Helvetica,Arial,sans-serif;color:#1c1917;background:#fff;margin:0;padding:1.5rem;line-height:1.5;} " +
	".report{max-width:820px;margin:0 auto;} " +
	"h1{font-size:1.5rem;color:#312e81;border-bottom:2px solid #4f46e5;padding-bottom:0.35rem;} " +
	"h2{font-size:1.1rem;color:#312e81;margin-top:1.6rem;} " +
	"h2[data-section='recommendations']{break-before:page;page-break-before:always;} " +
	"ul,ol{padding-left:1.4rem;} hr{border:0;border-top:1px solid #d6d3d1;margin:1.5rem 0;} " +
	"em{color:#57534e;} " +
	"@media print{ @page{size:A4;margin:14mm;} body{padding:0;} .report{max-width:none;} }"

// HTML converts markdown into a complete HTML document titled title.
func HTML(markdown, title string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + html.EscapeString(title) + "</title>" +
		"<style>" + reportCSS + "</style></head><body>" +
		"<main class='report'>" + applyPrintLayoutHooks(content.String()) + "</main>" +
		"</body></html>", nil
}

var reRecommendations = regexp.MustCompile(`(?i)<h2([^>]*)>\s*Strategic Recommendations\s*</h2>`)

// applyPrintLayoutHooks starts the recommendations on a new printed page.
func applyPrintLayoutHooks(contentHTML string) string {
	return reRecommendations.ReplaceAllString(contentHTML, `<h2$1 data-section="recommendations">Strategic Recommendations</h2>`)
}
