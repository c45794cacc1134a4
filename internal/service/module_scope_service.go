package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/studyplan-dev/study-planner-api/internal/models"
)

type moduleCatalog interface {
	FetchModulesInScope(ctx context.Context, token string) ([]models.Module, error)
}

// ModuleIndex maps module ids to their full catalog records for one
// aggregation session. Rebuilt from the fetched scope, never mutated.
type ModuleIndex map[string]models.Module

// BuildModuleIndex indexes a fetched scope by module id.
func BuildModuleIndex(modules []models.Module) ModuleIndex {
	index := make(ModuleIndex, len(modules))
	for _, module := range modules {
		index[module.ID] = module
	}
	return index
}

// Resolve maps a referenced id to its catalog record. The second return is
// false when the id is not part of the current scope.
func (i ModuleIndex) Resolve(id string) (models.Module, bool) {
	module, ok := i[id]
	return module, ok
}

// ModuleScopeService serves the module catalog visible to a user, backed by
// the platform fetch with a Redis snapshot in front of it.
type ModuleScopeService struct {
	platform moduleCatalog
	cache    *CacheService
	metrics  *MetricsService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewModuleScopeService constructs a module scope service.
func NewModuleScopeService(platform moduleCatalog, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *ModuleScopeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModuleScopeService{platform: platform, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

func scopeCacheKey(userID string) string {
	return fmt.Sprintf("scope:modules:%s", userID)
}

// ModulesInScope returns the flattened module catalog for the user.
func (s *ModuleScopeService) ModulesInScope(ctx context.Context, userID, token string) ([]models.Module, error) {
	key := scopeCacheKey(userID)

	var cached []models.Module
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	start := time.Now()
	modules, err := s.platform.FetchModulesInScope(ctx, token)
	if s.metrics != nil {
		s.metrics.ObservePlatformCall("modules", time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, modules, s.ttl); err != nil {
		s.logger.Warn("module scope cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return modules, nil
}
