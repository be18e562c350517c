package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/fortuna/dfscrape/internal/logger"
)

// BrowserOptions configures the headless Chrome allocator
type BrowserOptions struct {
	Headless bool
	Settle   time.Duration // pause after navigation and clicks so scripts can render
	Timeout  time.Duration // upper bound for a whole visit
}

// Browser renders pages in headless Chrome. One allocator is shared; each
// visit gets its own tab.
type Browser struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	settle   time.Duration
	timeout  time.Duration
	log      *logger.Logger
}

// NewBrowser starts a Chrome allocator. Chrome itself launches on first visit.
func NewBrowser(opts BrowserOptions) *Browser {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}

	return &Browser{
		allocCtx: allocCtx,
		cancel:   cancel,
		settle:   opts.Settle,
		timeout:  opts.Timeout,
		log:      logger.Named("browser"),
	}
}

// Close shuts the allocator and any Chrome process it started
func (b *Browser) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// Visit navigates to url and hands every rendered page to fn until fn asks for
// no more clicks.
func (b *Browser) Visit(ctx context.Context, url string, fn PageFunc) error {
	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()

	// tie the tab to the caller's context as well as the visit timeout
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(b.settle),
	)
	if err != nil {
		return fmt.Errorf("chromedp navigate %s: %w", url, err)
	}

	for page := 0; ; page++ {
		var html string
		if err := chromedp.Run(tabCtx, chromedp.OuterHTML(`html`, &html, chromedp.ByQuery)); err != nil {
			return fmt.Errorf("chromedp capture page %d: %w", page, err)
		}
		if html == "" {
			return fmt.Errorf("empty HTML content returned for page %d", page)
		}

		clicks, err := fn(page, html)
		if err != nil {
			return err
		}
		if len(clicks) == 0 {
			return nil
		}

		b.log.Debug().Str("url", url).Int("page", page).Strs("clicks", clicks).Msg("advancing page")
		for _, sel := range clicks {
			err := chromedp.Run(tabCtx,
				chromedp.WaitVisible(sel, chromedp.ByQuery),
				chromedp.Click(sel, chromedp.ByQuery),
			)
			if err != nil {
				return fmt.Errorf("chromedp click %q: %w", sel, err)
			}
		}
		if err := chromedp.Run(tabCtx, chromedp.Sleep(b.settle)); err != nil {
			return fmt.Errorf("chromedp settle: %w", err)
		}
	}
}
