package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/proxy"
	"github.com/user/salesbot-service/internal/repository"
)

const (
	StrategyHTTP    = "http"
	StrategyMinimal = "minimal"

	minimalUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Options configures the primary fetcher.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	MaxBodyBytes int64
	Proxies      *proxy.Manager
}

// BrowserFetcher retrieves pages with browser-like headers and follows redirects.
type BrowserFetcher struct {
	client       *http.Client
	proxies      *proxy.Manager
	maxBodyBytes int64
}

// NewBrowserFetcher builds the primary strategy.
func NewBrowserFetcher(opts Options) *BrowserFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.Proxies != nil {
		transport.Proxy = opts.Proxies.ProxyFunc
	}

	maxRedirects := opts.MaxRedirects
	return &BrowserFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return repository.ErrTooManyRedirects
				}
				return nil
			},
		},
		proxies:      opts.Proxies,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

func (f *BrowserFetcher) Name() string {
	return StrategyHTTP
}

// Fetch accepts any terminal status in 200-399.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*domain.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFetchFailed, err)
	}

	userAgent := proxy.DefaultUserAgents[0]
	if f.proxies != nil {
		userAgent = f.proxies.GetUserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %d", repository.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := readBody(resp.Body, f.maxBodyBytes)
	if err != nil {
		return nil, classify(err)
	}

	return &domain.Page{
		RequestedURL: url,
		FinalURL:     resp.Request.URL.String(),
		HTML:         body,
		StatusCode:   resp.StatusCode,
		Strategy:     StrategyHTTP,
		FetchedAt:    time.Now(),
	}, nil
}

// MinimalFetcher is the secondary strategy: a short user agent, a shorter
// timeout and no redirect tracking.
type MinimalFetcher struct {
	client       *http.Client
	maxBodyBytes int64
}

// NewMinimalFetcher builds the secondary strategy.
func NewMinimalFetcher(timeout time.Duration, maxBodyBytes int64) *MinimalFetcher {
	return &MinimalFetcher{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: maxBodyBytes,
	}
}

func (f *MinimalFetcher) Name() string {
	return StrategyMinimal
}

// Fetch requires a 2xx status. FinalURL is the requested URL.
func (f *MinimalFetcher) Fetch(ctx context.Context, url string) (*domain.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", minimalUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", repository.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := readBody(resp.Body, f.maxBodyBytes)
	if err != nil {
		return nil, classify(err)
	}

	return &domain.Page{
		RequestedURL: url,
		FinalURL:     url,
		HTML:         body,
		StatusCode:   resp.StatusCode,
		Strategy:     StrategyMinimal,
		FetchedAt:    time.Now(),
	}, nil
}

func readBody(r io.Reader, limit int64) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// classify maps transport errors onto the repository sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, repository.ErrTooManyRedirects):
		return err
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return fmt.Errorf("%w: %v", repository.ErrFetchTimeout, err)
	default:
		return fmt.Errorf("%w: %v", repository.ErrFetchFailed, err)
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
