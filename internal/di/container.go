package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/cybershield/threat-analyzer/internal/config"
	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/cybershield/threat-analyzer/internal/demo"
	"github.com/cybershield/threat-analyzer/internal/factory"
	"github.com/cybershield/threat-analyzer/internal/logging"
	"github.com/cybershield/threat-analyzer/internal/ports"
	"github.com/cybershield/threat-analyzer/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewServerFactory); err != nil {
		return nil, err
	}

	// Register scoring engine
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *core.AnalysisService {
		return core.NewAnalysisService(logger, cfg.GetAnalyzer().ModelVersion)
	}); err != nil {
		return nil, err
	}

	// Register content sanitizer
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *utils.ContentSanitizer {
		return utils.NewContentSanitizer(cfg.GetAnalyzer().MaxContentLength, logger)
	}); err != nil {
		return nil, err
	}

	// Register result store
	if err := container.Provide(func(f *factory.StoreFactory) (core.ResultStore, error) {
		return f.CreateResultStore()
	}); err != nil {
		return nil, err
	}

	// Register demo seeder
	if err := container.Provide(func(cfg *config.Config, analyzer *core.AnalysisService, store core.ResultStore, logger *zap.Logger) *demo.Seeder {
		return demo.NewSeeder(cfg.GetDemo(), analyzer, store, logger)
	}); err != nil {
		return nil, err
	}

	// Register server boundary
	if err := container.Provide(func(
		f *factory.ServerFactory,
		analyzer *core.AnalysisService,
		sanitizer *utils.ContentSanitizer,
		store core.ResultStore,
	) (ports.Server, error) {
		return f.CreateServer(analyzer, sanitizer, store)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
