// Package capture renders the video page in a headless browser and
// produces a full-page screenshot artifact.
package capture

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// PageInfo carries metadata read from the rendered page.
type PageInfo struct {
	Title string `json:"title,omitempty"`
}

// Screenshotter is the boundary interface for the screenshot capability:
// URL in, screenshot file plus page metadata out.
type Screenshotter interface {
	Capture(ctx context.Context, url, outPath string) (PageInfo, error)
}

// ChromeScreenshotter captures screenshots with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeScreenshotter struct {
	Timeout time.Duration
}

// NewChromeScreenshotter creates a screenshotter with the given per-capture timeout.
func NewChromeScreenshotter(timeout time.Duration) *ChromeScreenshotter {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &ChromeScreenshotter{Timeout: timeout}
}

// Capture renders the page, writes a full-page PNG to outPath, and returns
// metadata parsed from the rendered HTML.
func (c *ChromeScreenshotter) Capture(ctx context.Context, url, outPath string) (PageInfo, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
	defer cancel()

	var buf []byte
	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give the player and title a moment to render
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss consent dialogs if present - don't fail if not found
			_ = chromedp.Click(`button[aria-label*="Accept"], button[id*="accept"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
		chromedp.FullScreenshot(&buf, 90),
	)
	if err != nil {
		return PageInfo{}, fmt.Errorf("screenshot capture failed: %w", err)
	}

	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return PageInfo{}, fmt.Errorf("failed to write screenshot: %w", err)
	}

	info := PageInfo{Title: parseTitle(html)}
	log.Printf("[capture] Screenshot saved: %s (%d bytes, title=%q)", outPath, len(buf), info.Title)
	return info, nil
}

// parseTitle extracts the page title from rendered HTML.
// Best effort: an unparsable document yields an empty title, not an error.
func parseTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	// YouTube suffixes titles with the site name
	title = strings.TrimSuffix(title, " - YouTube")
	return strings.TrimSpace(title)
}
