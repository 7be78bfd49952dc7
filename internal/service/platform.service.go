package service

import (
	"context"
	"cryptofolio/internal/connector"
	"cryptofolio/internal/domain"
	"cryptofolio/internal/logger"
	"cryptofolio/internal/repository"
	"fmt"
	"strconv"
	"time"
)

// PlatformService fans out to every configured platform and merges whatever
// comes back into one Snapshot.
type PlatformService interface {
	// RefreshAll reads the platform configs once and fetches them all in
	// parallel. A failed platform is left out of Snapshot.Platforms and
	// listed in Snapshot.Failures; only a config read failure is returned
	// as an error.
	RefreshAll(ctx context.Context) (*domain.Snapshot, error)
}

type platformServiceHandler struct {
	ConfigRepository repository.PlatformConfigRepository
	Connectors       map[domain.PlatformType]connector.Connector
	Retry            RetryPolicy
	Now              func() time.Time
}

func NewPlatformService(
	configRepository repository.PlatformConfigRepository,
	connectors []connector.Connector,
	retry RetryPolicy,
) PlatformService {
	byType := map[domain.PlatformType]connector.Connector{}
	for _, c := range connectors {
		byType[c.Type()] = c
	}
	return platformServiceHandler{
		ConfigRepository: configRepository,
		Connectors:       byType,
		Retry:            retry,
		Now:              time.Now,
	}
}

func (h platformServiceHandler) RefreshAll(ctx context.Context) (*domain.Snapshot, error) {
	log := logger.FromContext(ctx)

	var configs []domain.PlatformConfig
	err := h.Retry.Do(ctx, "load platform configs", func(ctx context.Context) error {
		var err error
		configs, err = h.ConfigRepository.List()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load platform configs: %w", err)
	}

	placeholders := map[int]domain.Platform{}
	tasks := []Task[*domain.Platform]{}

	for i, cfg := range configs {
		c, ok := h.Connectors[cfg.Type]
		if !ok {
			log.Warnf("no connector for platform %s of type %q, showing placeholder", cfg.Name, cfg.Type)
			placeholders[i] = domain.NewPlaceholderPlatform(cfg)
			continue
		}
		if !c.HasCredentials(cfg) {
			log.Infof("platform %s is missing credentials, showing placeholder", cfg.Name)
			placeholders[i] = domain.NewPlaceholderPlatform(cfg)
			continue
		}

		cfg := cfg
		tasks = append(tasks, Task[*domain.Platform]{
			ID: strconv.Itoa(i),
			Run: func(ctx context.Context) (*domain.Platform, error) {
				var platform *domain.Platform
				err := h.Retry.Do(ctx, "fetch "+cfg.Name, func(ctx context.Context) error {
					p, err := c.Fetch(ctx, cfg)
					if err != nil {
						return err
					}
					if p == nil {
						return fmt.Errorf("%s: connector returned no result", cfg.Name)
					}
					platform = p
					return nil
				})
				return platform, err
			},
		})
	}

	outcomes := SettleAll(ctx, tasks)

	platforms := []domain.Platform{}
	failures := []domain.PlatformFailure{}
	for i, cfg := range configs {
		if placeholder, ok := placeholders[i]; ok {
			platforms = append(platforms, placeholder)
			continue
		}
		outcome := outcomes[strconv.Itoa(i)]
		if outcome.Err != nil {
			log.Warnf("failed to fetch platform %s: %s", cfg.Name, outcome.Err.Error())
			failures = append(failures, domain.PlatformFailure{
				Name:                cfg.Name,
				Type:                cfg.Type,
				Error:               outcome.Err.Error(),
				RequiresCredentials: domain.IsAuthError(outcome.Err),
			})
			continue
		}
		platforms = append(platforms, *outcome.Value)
	}

	return domain.NewSnapshot(platforms, failures, h.Now().UTC()), nil
}
