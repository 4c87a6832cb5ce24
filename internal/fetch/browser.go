package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP
// fetch. Shorter text usually means a JavaScript-rendered page.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 45 * time.Second

// ShouldUseBrowser reports whether extracted text is too short to be a full posting.
func ShouldUseBrowser(extractedText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extractedText)) < MinContentLength
}

// Renderer renders pages in headless Chrome. Chrome or Chromium must be installed.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer implements Renderer with chromedp.
type ChromeRenderer struct {
	Timeout time.Duration
	// Settle is how long to wait after load for client-side rendering
	Settle time.Duration
}

// NewChromeRenderer returns a renderer with default timings.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{Timeout: DefaultBrowserTimeout, Settle: 3 * time.Second}
}

// Render navigates to url and returns the rendered HTML.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	if _, err := ValidateURL(url); err != nil {
		return "", err
	}
	slog.Debug("rendering page in headless browser", "url", url)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	browserCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(r.Settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	slog.Debug("rendered page", "url", url, "bytes", len(html))
	return html, nil
}

// JobPosting fetches a job posting and returns its main text. When the HTTP
// result is too short and renderer is non-nil, the page is rendered in a
// browser instead. A failed render keeps the HTTP text.
func JobPosting(ctx context.Context, urlStr string, opts *Options, renderer Renderer) (string, Platform, error) {
	platform := DetectPlatform(urlStr)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return "", platform, err
	}

	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return "", platform, fmt.Errorf("content extraction failed: %w", err)
	}

	if renderer != nil && ShouldUseBrowser(text) {
		slog.Info("posting text too short, falling back to browser", "url", urlStr, "chars", utf8.RuneCountInString(text))
		html, renderErr := renderer.Render(ctx, urlStr)
		if renderErr != nil {
			slog.Warn("browser rendering failed, using HTTP content", "url", urlStr, "error", renderErr)
		} else if rendered, extractErr := ExtractMainText(html, content, noise...); extractErr == nil {
			text = rendered
		}
	}
	return text, platform, nil
}
