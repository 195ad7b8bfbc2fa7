package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// DefaultSessionTimeout bounds one full browser session (navigate,
	// overlay handling, description wait, extraction).
	DefaultSessionTimeout = 60 * time.Second
	// DefaultUserAgent mimics a desktop Chrome; LinkedIn serves a reduced
	// page to obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// descriptionSelector is the expanded description container on a
	// LinkedIn job detail page.
	descriptionSelector = "div.show-more-less-html__markup"
	// showMoreSelector is the "Show more" disclosure button.
	showMoreSelector = "button.show-more-less-html__button--more"
	// cookieRejectSelector dismisses the cookie consent interstitial.
	cookieRejectSelector = `button[action-type="DENY"]`
	// loginDismissSelector dismisses the sign-in modal overlay.
	loginDismissSelector = "button.modal__dismiss"
)

// Options configures the browser session.
type Options struct {
	SessionTimeout time.Duration
	UserAgent      string
	Headless       bool
}

// DefaultOptions returns headless defaults suitable for unattended runs.
func DefaultOptions() *Options {
	return &Options{
		SessionTimeout: DefaultSessionTimeout,
		UserAgent:      DefaultUserAgent,
		Headless:       true,
	}
}

// Fetcher drives a headless browser to pull job descriptions off listing
// pages. One browser session per Fetch call; the session is always torn
// down when the call returns.
type Fetcher struct {
	opts   *Options
	logger *zap.Logger
}

// NewFetcher creates a Fetcher. Nil options or logger fall back to defaults.
func NewFetcher(opts *Options, logger *zap.Logger) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.SessionTimeout <= 0 {
		opts.SessionTimeout = DefaultSessionTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{opts: opts, logger: logger}
}

// Fetch normalizes the listing URL, renders the detail page, and returns
// the description as cleaned plain text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	target, err := NormalizeJobURL(rawURL)
	if err != nil {
		return "", err
	}

	f.logger.Info("fetching job listing", zap.String("url", target))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", f.opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(1920, 1080),
			chromedp.UserAgent(f.opts.UserAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, f.opts.SessionTimeout)
	defer cancelTimeout()

	var descriptionHTML string
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.Sleep(3*time.Second),
		f.bestEffortClick(cookieRejectSelector),
		f.bestEffortClick(loginDismissSelector),
		chromedp.Sleep(time.Second),
		f.bestEffortClick(showMoreSelector),
		chromedp.Sleep(time.Second),
		chromedp.WaitVisible(descriptionSelector, chromedp.ByQuery),
		chromedp.InnerHTML(descriptionSelector, &descriptionHTML, chromedp.ByQuery),
	)
	if err != nil {
		return "", &ScrapeError{
			URL:     target,
			Message: "failed to find or read the description container",
			Cause:   err,
		}
	}

	text := CleanHTMLFragment(descriptionHTML)
	if text == "" {
		// Markup cleanup yielded nothing; fall back to visible text.
		text = VisibleText(descriptionHTML)
	}
	if strings.TrimSpace(text) == "" {
		return "", &ScrapeError{
			URL:     target,
			Message: "found description container, but its content was empty",
		}
	}

	f.logger.Info("scraped job description",
		zap.String("url", target),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

// bestEffortClick clicks a selector if it shows up quickly; failures and
// timeouts are ignored so interstitial overlays never abort the session.
func (f *Fetcher) bestEffortClick(selector string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		clickCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible).Do(clickCtx); err != nil {
			f.logger.Debug("best-effort click skipped",
				zap.String("selector", selector),
				zap.Error(err),
			)
		}
		return nil
	})
}
