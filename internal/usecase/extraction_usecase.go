package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/user/salesbot-service/internal/domain"
	"github.com/user/salesbot-service/internal/extractor"
	"github.com/user/salesbot-service/internal/monitoring"
	"github.com/user/salesbot-service/internal/repository"
)

// Extraction outcomes reported in metrics.
const (
	OutcomeCached    = "cached"
	OutcomePrimary   = "primary"
	OutcomeSecondary = "secondary"
	OutcomeDefault   = "default"
)

// FactsProvider returns the product record for a landing page URL.
type FactsProvider interface {
	Extract(ctx context.Context, url string) domain.ProductFacts
	Inspect(ctx context.Context, url string) (domain.ProductFacts, extractor.Report, string)
}

// ExtractionUseCase resolves product facts through the cache, the fetch
// strategies and the extractor. It never fails: when both fetches fail the
// default record is returned.
type ExtractionUseCase struct {
	cache     repository.FactsCache
	primary   repository.PageFetcher
	secondary repository.PageFetcher
	extractor *extractor.Extractor
	archive   repository.ExtractionArchive
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

// NewExtractionUseCase wires the pipeline. archive, metrics and logger may be nil.
func NewExtractionUseCase(
	cache repository.FactsCache,
	primary, secondary repository.PageFetcher,
	ex *extractor.Extractor,
	archive repository.ExtractionArchive,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *ExtractionUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractionUseCase{
		cache:     cache,
		primary:   primary,
		secondary: secondary,
		extractor: ex,
		archive:   archive,
		metrics:   metrics,
		logger:    logger,
	}
}

// Extract returns the cached record for url or builds a fresh one.
func (uc *ExtractionUseCase) Extract(ctx context.Context, url string) domain.ProductFacts {
	if facts, ok := uc.lookup(ctx, url); ok {
		uc.metrics.IncExtraction(OutcomeCached)
		return facts
	}

	res := uc.build(ctx, url)
	if err := uc.cache.Put(ctx, url, res.facts); err != nil {
		uc.logger.Warn("Failed to cache extracted facts", zap.String("url", url), zap.Error(err))
	}
	uc.metrics.IncExtraction(res.outcome)
	return res.facts
}

// Inspect runs the pipeline without reading or writing the cache and
// returns the per-field report and the strategy that produced the page
// ("default" when no page could be fetched).
func (uc *ExtractionUseCase) Inspect(ctx context.Context, url string) (domain.ProductFacts, extractor.Report, string) {
	res := uc.build(ctx, url)
	uc.metrics.IncExtraction(res.outcome)
	return res.facts, res.report, res.strategy
}

type extraction struct {
	facts    domain.ProductFacts
	report   extractor.Report
	outcome  string
	strategy string
}

func (uc *ExtractionUseCase) lookup(ctx context.Context, url string) (domain.ProductFacts, bool) {
	facts, err := uc.cache.Get(ctx, url)
	switch {
	case err == nil:
		uc.metrics.IncCacheLookup(true)
		return facts, true
	case !errors.Is(err, repository.ErrCacheMiss):
		uc.logger.Warn("Cache lookup failed, treating as miss", zap.String("url", url), zap.Error(err))
	}
	uc.metrics.IncCacheLookup(false)
	return domain.ProductFacts{}, false
}

func (uc *ExtractionUseCase) build(ctx context.Context, url string) extraction {
	page, outcome, err := uc.fetch(ctx, url)
	if err != nil {
		uc.logger.Warn("All fetch strategies failed, serving defaults", zap.String("url", url), zap.Error(err))
		uc.recordFailure(ctx, url, err)
		facts, report, _ := uc.extractor.ExtractHTML(url, "")
		return extraction{facts: facts, report: report, outcome: OutcomeDefault, strategy: OutcomeDefault}
	}

	facts, report, err := uc.extractor.ExtractHTML(page.FinalURL, page.HTML)
	if err != nil {
		uc.logger.Warn("Failed to parse fetched page, serving defaults", zap.String("url", url), zap.Error(err))
		return extraction{facts: facts, report: report, outcome: OutcomeDefault, strategy: page.Strategy}
	}
	uc.saveSnapshot(ctx, url, facts, page.Strategy)
	uc.logger.Info("Extracted product facts",
		zap.String("url", url),
		zap.String("final_url", page.FinalURL),
		zap.String("strategy", page.Strategy),
		zap.Strings("defaulted", report.Defaulted()),
	)
	return extraction{facts: facts, report: report, outcome: outcome, strategy: page.Strategy}
}

// fetch tries the primary strategy and then the secondary one.
func (uc *ExtractionUseCase) fetch(ctx context.Context, url string) (*domain.Page, string, error) {
	primary := uc.fetchWith(ctx, uc.primary, url)
	if primary.Err == nil {
		return primary.Value, OutcomePrimary, nil
	}
	uc.logger.Info("Primary fetch failed, trying secondary strategy",
		zap.String("url", url), zap.String("strategy", uc.primary.Name()), zap.Error(primary.Err))

	if uc.secondary == nil {
		return nil, OutcomeDefault, primary.Err
	}
	secondary := uc.fetchWith(ctx, uc.secondary, url)
	if secondary.Err == nil {
		return secondary.Value, OutcomeSecondary, nil
	}
	return nil, OutcomeDefault, fmt.Errorf("%s: %w; %s: %w", uc.primary.Name(), primary.Err, uc.secondary.Name(), secondary.Err)
}

func (uc *ExtractionUseCase) fetchWith(ctx context.Context, fetcher repository.PageFetcher, url string) Result[*domain.Page] {
	start := time.Now()
	page, err := fetcher.Fetch(ctx, url)
	uc.metrics.ObserveFetch(fetcher.Name(), time.Since(start))
	if err != nil {
		uc.metrics.IncFetchError(fetcher.Name(), fetchErrorType(err))
		return Fail[*domain.Page](err)
	}
	if page.FinalURL == "" {
		page.FinalURL = url
	}
	if page.Strategy == "" {
		page.Strategy = fetcher.Name()
	}
	return Ok(page)
}

func (uc *ExtractionUseCase) saveSnapshot(ctx context.Context, url string, facts domain.ProductFacts, strategy string) {
	if uc.archive == nil {
		return
	}
	if err := uc.archive.SaveSnapshot(ctx, url, facts, strategy); err != nil {
		uc.logger.Warn("Failed to archive snapshot", zap.String("url", url), zap.Error(err))
		return
	}
	if err := uc.archive.ClearFailure(ctx, url); err != nil {
		uc.logger.Warn("Failed to clear failure record", zap.String("url", url), zap.Error(err))
	}
}

func (uc *ExtractionUseCase) recordFailure(ctx context.Context, url string, cause error) {
	if uc.archive == nil {
		return
	}
	if err := uc.archive.RecordFailure(ctx, url, cause.Error()); err != nil {
		uc.logger.Warn("Failed to record fetch failure", zap.String("url", url), zap.Error(err))
	}
}

func fetchErrorType(err error) string {
	switch {
	case errors.Is(err, repository.ErrFetchTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, repository.ErrTooManyRedirects):
		return "redirects"
	case errors.Is(err, repository.ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, repository.ErrFetchFailed):
		return "transport"
	default:
		return "unknown"
	}
}
