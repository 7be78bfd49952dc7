package service

import (
	"context"
	"cryptofolio/internal/calculator"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/logger"
	"cryptofolio/internal/repository"
	"fmt"
	"time"
)

// PortfolioService is what the API and CLI talk to. Reads go through the
// snapshot cache; Refresh always fetches.
type PortfolioService interface {
	GetSnapshot(ctx context.Context) (*domain.Snapshot, error)
	Refresh(ctx context.Context) (*domain.Snapshot, error)

	Assets(ctx context.Context) ([]domain.AggregatedAsset, error)
	Asset(ctx context.Context, ticker string) (*domain.AggregatedAsset, error)
	Analytics(ctx context.Context) (*domain.PortfolioAnalytics, error)
	Allocation(ctx context.Context, topN int) (*domain.AllocationChart, error)

	ListPlatformConfigs(ctx context.Context) ([]domain.PlatformConfig, error)
	AddPlatform(ctx context.Context, cfg domain.PlatformConfig) error

	// StartPolling refreshes the cache whenever it has gone stale, checking
	// every interval, until ctx is cancelled.
	StartPolling(ctx context.Context, interval time.Duration)
}

type portfolioServiceHandler struct {
	PlatformService  PlatformService
	ConfigRepository repository.PlatformConfigRepository
	Cache            *SnapshotCache
}

func NewPortfolioService(
	platformService PlatformService,
	configRepository repository.PlatformConfigRepository,
	cache *SnapshotCache,
) PortfolioService {
	return portfolioServiceHandler{
		PlatformService:  platformService,
		ConfigRepository: configRepository,
		Cache:            cache,
	}
}

func (h portfolioServiceHandler) snapshot(ctx context.Context, force bool) (*domain.Snapshot, error) {
	snapshot, err := h.Cache.GetOrRefresh(ctx, PlatformDataKey, force, h.PlatformService.RefreshAll)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh platforms: %w", err)
	}
	return snapshot, nil
}

func (h portfolioServiceHandler) GetSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	return h.snapshot(ctx, false)
}

func (h portfolioServiceHandler) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	return h.snapshot(ctx, true)
}

func (h portfolioServiceHandler) Assets(ctx context.Context) ([]domain.AggregatedAsset, error) {
	snapshot, err := h.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.AggregateByTicker(snapshot.Platforms), nil
}

func (h portfolioServiceHandler) Asset(ctx context.Context, ticker string) (*domain.AggregatedAsset, error) {
	snapshot, err := h.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.FindAsset(snapshot.Platforms, ticker)
}

func (h portfolioServiceHandler) Analytics(ctx context.Context) (*domain.PortfolioAnalytics, error) {
	snapshot, err := h.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	analytics := calculator.ComputeAnalytics(snapshot.Platforms)
	return &analytics, nil
}

func (h portfolioServiceHandler) Allocation(ctx context.Context, topN int) (*domain.AllocationChart, error) {
	analytics, err := h.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.AllocationChart{
		Assets:    calculator.BucketAssetAllocation(analytics.AssetAllocation, topN),
		Platforms: calculator.PlatformSlices(analytics.PlatformAllocation),
	}, nil
}

func (h portfolioServiceHandler) ListPlatformConfigs(ctx context.Context) ([]domain.PlatformConfig, error) {
	return h.ConfigRepository.List()
}

// AddPlatform stores a new platform entry and drops the cached snapshot so
// the next read includes it.
func (h portfolioServiceHandler) AddPlatform(ctx context.Context, cfg domain.PlatformConfig) error {
	if err := h.ConfigRepository.Add(cfg); err != nil {
		return err
	}
	h.Cache.Invalidate(PlatformDataKey)
	logger.FromContext(ctx).Infof("added platform %s (%s)", cfg.Name, cfg.Type)
	return nil
}

func (h portfolioServiceHandler) StartPolling(ctx context.Context, interval time.Duration) {
	log := logger.FromContext(ctx)
	if interval <= 0 {
		log.Errorf("not polling, refresh interval must be positive, got %s", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, ok := h.Cache.Get(PlatformDataKey); ok {
				continue
			}
			snapshot, err := h.snapshot(ctx, false)
			if err != nil {
				log.Errorf("background refresh failed: %s", err.Error())
				continue
			}
			log.Infow("background refresh complete",
				"snapshotID", snapshot.SnapshotID,
				"platforms", len(snapshot.Platforms),
				"failures", len(snapshot.Failures),
			)
		}
	}
}
