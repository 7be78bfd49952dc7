package service

import (
	"context"
	"cryptofolio/internal/domain"
	mock_repository "cryptofolio/internal/repository/mocks"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakePlatformService struct {
	mu        sync.Mutex
	calls     int
	platforms []domain.Platform
	// runs after the snapshot is built, before RefreshAll returns
	afterFetch func(call int)
}

func (f *fakePlatformService) RefreshAll(ctx context.Context) (*domain.Snapshot, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	snapshot := domain.NewSnapshot(f.platforms, nil, time.Now())
	f.mu.Unlock()

	if f.afterFetch != nil {
		f.afterFetch(call)
	}
	return snapshot, nil
}

func (f *fakePlatformService) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testPlatforms() []domain.Platform {
	loanInfo := domain.LoanInfo{Ltv: 0.5, LoanCoin: "USDT", Debt: 500}
	return []domain.Platform{
		{
			Name: "Binance",
			Type: domain.PlatformType_Binance,
			Holdings: []domain.Holding{
				{AssetName: "BTC", Ticker: "BTC", Amount: 0.1, Price: 50000, Value: 5000, Type: domain.HoldingType_Spot},
				{AssetName: "ETH", Ticker: "ETH", Amount: 0.5, Price: 2000, Value: 1000, Type: domain.HoldingType_Collateral, LoanInfo: &loanInfo},
				{AssetName: "Debt (USDT)", Ticker: "USDT", Amount: 500, Price: 1, Value: -500, Type: domain.HoldingType_Debt, LoanInfo: &loanInfo},
			},
		},
		walletPlatform,
	}
}

func newPortfolioServiceTest(t *testing.T) (PortfolioService, *fakePlatformService, *mock_repository.MockPlatformConfigRepository) {
	ctrl := gomock.NewController(t)
	configRepository := mock_repository.NewMockPlatformConfigRepository(ctrl)
	platformService := &fakePlatformService{platforms: testPlatforms()}
	return NewPortfolioService(platformService, configRepository, NewSnapshotCache(DefaultCacheTTL)), platformService, configRepository
}

func Test_portfolioServiceHandler(t *testing.T) {
	t.Run("reads share one cached snapshot", func(t *testing.T) {
		svc, platformService, _ := newPortfolioServiceTest(t)
		ctx := context.Background()

		snapshot, err := svc.GetSnapshot(ctx)
		require.NoError(t, err)
		_, err = svc.Assets(ctx)
		require.NoError(t, err)
		_, err = svc.Analytics(ctx)
		require.NoError(t, err)

		again, err := svc.GetSnapshot(ctx)
		require.NoError(t, err)
		require.Equal(t, snapshot.SnapshotID, again.SnapshotID)
		require.Equal(t, 1, platformService.Calls())
	})

	t.Run("refresh always fetches", func(t *testing.T) {
		svc, platformService, _ := newPortfolioServiceTest(t)
		ctx := context.Background()

		first, err := svc.GetSnapshot(ctx)
		require.NoError(t, err)
		refreshed, err := svc.Refresh(ctx)
		require.NoError(t, err)
		require.NotEqual(t, first.SnapshotID, refreshed.SnapshotID)
		require.Equal(t, 2, platformService.Calls())
	})

	t.Run("analytics and allocation", func(t *testing.T) {
		svc, _, _ := newPortfolioServiceTest(t)
		ctx := context.Background()

		analytics, err := svc.Analytics(ctx)
		require.NoError(t, err)
		require.InDelta(t, 6100, analytics.TotalAssetsValue, 1e-9)
		require.InDelta(t, 500, analytics.TotalDebtValue, 1e-9)
		require.InDelta(t, 5600, analytics.NetValue, 1e-9)
		require.Equal(t, 4, analytics.TotalAssets)
		require.Equal(t, 2, analytics.TotalPlatforms)

		chart, err := svc.Allocation(ctx, 2)
		require.NoError(t, err)
		require.Len(t, chart.Assets, 3)
		require.Equal(t, "BTC (BTC)", chart.Assets[0].Name)
		require.Equal(t, "Others (1 assets)", chart.Assets[2].Name)
		require.InDelta(t, 100, chart.Assets[2].Value, 1e-9)
		require.Equal(t, []string{"Binance", "Wallet"}, []string{chart.Platforms[0].Name, chart.Platforms[1].Name})
	})

	t.Run("asset lookup", func(t *testing.T) {
		svc, _, _ := newPortfolioServiceTest(t)
		ctx := context.Background()

		asset, err := svc.Asset(ctx, "EGLD")
		require.NoError(t, err)
		require.InDelta(t, 100, asset.NetValue, 1e-9)

		_, err = svc.Asset(ctx, "DOGE")
		require.ErrorIs(t, err, domain.ErrAssetNotFound)
	})

	t.Run("adding a platform drops the cached snapshot", func(t *testing.T) {
		svc, platformService, configRepository := newPortfolioServiceTest(t)
		ctx := context.Background()

		_, err := svc.GetSnapshot(ctx)
		require.NoError(t, err)

		configRepository.EXPECT().Add(walletConfig).Return(nil)
		require.NoError(t, svc.AddPlatform(ctx, walletConfig))

		_, err = svc.GetSnapshot(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, platformService.Calls())
	})

	t.Run("platform added during a refresh is not hidden by it", func(t *testing.T) {
		svc, platformService, configRepository := newPortfolioServiceTest(t)
		ctx := context.Background()

		configRepository.EXPECT().Add(walletConfig).Return(nil)
		platformService.afterFetch = func(call int) {
			if call == 1 {
				time.Sleep(time.Millisecond)
				require.NoError(t, svc.AddPlatform(ctx, walletConfig))
			}
		}

		first, err := svc.Refresh(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, platformService.Calls())

		again, err := svc.GetSnapshot(ctx)
		require.NoError(t, err)
		require.Equal(t, first.SnapshotID, again.SnapshotID)
		require.Equal(t, 2, platformService.Calls())
	})

	t.Run("polling refreshes an empty cache and stops with the context", func(t *testing.T) {
		svc, platformService, _ := newPortfolioServiceTest(t)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			svc.StartPolling(ctx, 5*time.Millisecond)
			close(done)
		}()

		require.Eventually(t, func() bool {
			return platformService.Calls() >= 1
		}, time.Second, 5*time.Millisecond)

		cancel()
		<-done
		// the cache stays fresh, so polling does not keep fetching
		require.Equal(t, 1, platformService.Calls())
	})

	t.Run("polling with a non-positive interval returns immediately", func(t *testing.T) {
		svc, platformService, _ := newPortfolioServiceTest(t)
		svc.StartPolling(context.Background(), 0)
		require.Equal(t, 0, platformService.Calls())
	})
}
