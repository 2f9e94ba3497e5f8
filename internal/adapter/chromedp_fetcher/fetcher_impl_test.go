package chromedp_fetcher

import (
	"context"
	"testing"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/user/salesbot-service/internal/proxy"
	"github.com/user/salesbot-service/internal/repository"
)

func TestChromedpFetcher_Name(t *testing.T) {
	f := NewChromedpFetcher(2, time.Second, nil, zaptest.NewLogger(t))
	defer f.Close()

	assert.Equal(t, StrategyBrowser, f.Name())
	assert.Equal(t, 2, cap(f.slots))
}

func TestChromedpFetcher_CancelledContext(t *testing.T) {
	f := NewChromedpFetcher(1, time.Second, nil, zaptest.NewLogger(t))
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "https://example.com")
	assert.ErrorIs(t, err, repository.ErrFetchFailed)
}

func TestChromedpFetcher_WaitsForSlot(t *testing.T) {
	f := NewChromedpFetcher(1, time.Second, nil, zaptest.NewLogger(t))
	defer f.Close()

	f.slots <- struct{}{}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, "https://example.com")
	assert.ErrorIs(t, err, repository.ErrFetchTimeout)
}

func TestDocumentStatus_TracksMainFrameDocument(t *testing.T) {
	statuses := newDocumentStatus()
	main := cdp.FrameID("MAIN")

	statuses.observe(&network.EventResponseReceived{
		FrameID: main, Type: network.ResourceTypeDocument, Response: &network.Response{Status: 404},
	})
	statuses.observe(&network.EventResponseReceived{
		FrameID: main, Type: network.ResourceTypeScript, Response: &network.Response{Status: 200},
	})
	statuses.observe(&network.EventResponseReceived{
		FrameID: "IFRAME", Type: network.ResourceTypeDocument, Response: &network.Response{Status: 200},
	})
	statuses.observe(&network.EventLoadingFinished{})

	code, ok := statuses.status(main)
	require.True(t, ok)
	assert.Equal(t, int64(404), code)
	assert.ErrorIs(t, checkStatus(code), repository.ErrUnexpectedStatus)

	_, ok = statuses.status("UNKNOWN")
	assert.False(t, ok)
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code    int64
		wantErr bool
	}{
		{200, false},
		{204, false},
		{304, false},
		{399, false},
		{404, true},
		{500, true},
		{199, true},
	}
	for _, tt := range tests {
		err := checkStatus(tt.code)
		if tt.wantErr {
			assert.ErrorIs(t, err, repository.ErrUnexpectedStatus, tt.code)
		} else {
			assert.NoError(t, err, tt.code)
		}
	}
}

func TestChromedpFetcher_RotatesUserAgent(t *testing.T) {
	proxies, err := proxy.NewManager(nil, []string{"ua/1"})
	require.NoError(t, err)
	f := NewChromedpFetcher(1, time.Second, proxies, zaptest.NewLogger(t))
	defer f.Close()
	assert.Equal(t, "ua/1", f.userAgent())

	plain := NewChromedpFetcher(1, time.Second, nil, zaptest.NewLogger(t))
	defer plain.Close()
	assert.Equal(t, proxy.DefaultUserAgents[0], plain.userAgent())
}
