package chromedp_fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/proxy"
	"github.com/user/salesbot-service/internal/repository"
)

const StrategyBrowser = "browser"

// ChromedpFetcher renders pages in headless Chrome so that client-side
// builders have produced their markup before extraction.
type ChromedpFetcher struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	slots       chan struct{}
	timeout     time.Duration
	proxies     *proxy.Manager
	logger      *zap.Logger
}

// NewChromedpFetcher creates a fetcher sharing one browser allocator.
// At most maxConcurrency tabs are open at a time. The user agent rotates
// per tab; the proxy is a browser-wide flag and is picked once here.
func NewChromedpFetcher(maxConcurrency int, pageLoadTimeout time.Duration, proxies *proxy.Manager, logger *zap.Logger) *ChromedpFetcher {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if proxies != nil {
		if p := proxies.GetProxy(); p != nil {
			opts = append(opts, chromedp.ProxyServer(p.String()))
		}
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpFetcher{
		allocCtx:    allocCtx,
		cancelAlloc: cancel,
		slots:       make(chan struct{}, maxConcurrency),
		timeout:     pageLoadTimeout,
		proxies:     proxies,
		logger:      logger,
	}
}

func (c *ChromedpFetcher) Name() string {
	return StrategyBrowser
}

func (c *ChromedpFetcher) userAgent() string {
	if c.proxies == nil {
		return proxy.DefaultUserAgents[0]
	}
	return c.proxies.GetUserAgent()
}

// documentStatus records the HTTP status of the last document response
// per frame. Redirects do not emit responseReceived, so the last entry
// of a frame is its terminal status.
type documentStatus struct {
	mu      sync.Mutex
	byFrame map[cdp.FrameID]int64
}

func newDocumentStatus() *documentStatus {
	return &documentStatus{byFrame: make(map[cdp.FrameID]int64)}
}

func (d *documentStatus) observe(ev any) {
	e, ok := ev.(*network.EventResponseReceived)
	if !ok || e.Type != network.ResourceTypeDocument || e.Response == nil {
		return
	}
	d.mu.Lock()
	d.byFrame[e.FrameID] = e.Response.Status
	d.mu.Unlock()
}

func (d *documentStatus) status(frame cdp.FrameID) (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	code, ok := d.byFrame[frame]
	return code, ok
}

// checkStatus applies the same acceptance range as the HTTP strategy.
func checkStatus(code int64) error {
	if code < 200 || code >= 400 {
		return fmt.Errorf("%w: %d", repository.ErrUnexpectedStatus, code)
	}
	return nil
}

// Fetch navigates to url and returns the rendered document.
func (c *ChromedpFetcher) Fetch(ctx context.Context, url string) (*domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFetchFailed, err)
	}
	select {
	case c.slots <- struct{}{}:
		defer func() { <-c.slots }()
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", repository.ErrFetchTimeout, ctx.Err())
	}

	// Create a new tab from the shared allocator
	taskCtx, cancel := chromedp.NewContext(c.allocCtx, chromedp.WithLogf(c.logger.Sugar().Debugf))
	defer cancel()

	// Bound the whole task by the page load budget and by the caller
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	statuses := newDocumentStatus()
	chromedp.ListenTarget(taskCtx, statuses.observe)

	var finalURL, html string
	startTime := time.Now()

	err := chromedp.Run(taskCtx,
		network.Enable(),
		emulation.SetUserAgentOverride(c.userAgent()).WithAcceptLanguage("pt-BR,pt;q=0.9,en;q=0.8"),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "pt-BR,pt;q=0.9,en;q=0.8",
		}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		c.logger.Warn("Browser fetch failed", zap.String("url", url), zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(taskCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", repository.ErrFetchTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrFetchFailed, err)
	}

	// the main frame id of a page target is its target id
	mainFrame := cdp.FrameID(chromedp.FromContext(taskCtx).Target.TargetID)
	code, seen := statuses.status(mainFrame)
	if !seen {
		return nil, fmt.Errorf("%w: no document response for %s", repository.ErrFetchFailed, url)
	}
	if err := checkStatus(code); err != nil {
		c.logger.Warn("Browser fetch rejected", zap.String("url", url), zap.Int64("status", code))
		return nil, err
	}

	c.logger.Debug("Browser fetch finished",
		zap.String("url", url),
		zap.String("final_url", finalURL),
		zap.Int64("status", code),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return &domain.Page{
		RequestedURL: url,
		FinalURL:     finalURL,
		HTML:         html,
		StatusCode:   int(code),
		Strategy:     StrategyBrowser,
		FetchedAt:    time.Now(),
	}, nil
}

// Close shuts down the browser process.
func (c *ChromedpFetcher) Close() {
	c.cancelAlloc()
}
