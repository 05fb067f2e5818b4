package factory

import (
	"fmt"

	"github.com/cybershield/threat-analyzer/internal/adapters/httpapi"
	"github.com/cybershield/threat-analyzer/internal/adapters/smtpgw"
	"github.com/cybershield/threat-analyzer/internal/config"
	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/cybershield/threat-analyzer/internal/ports"
	"github.com/cybershield/threat-analyzer/internal/utils"
	"go.uber.org/zap"
)

// ServerFactory creates the request boundary based on configuration
type ServerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.Config, logger *zap.Logger) *ServerFactory {
	return &ServerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateServer creates the configured boundary: the HTTP API or the SMTP
// gateway.
func (f *ServerFactory) CreateServer(
	analyzer *core.AnalysisService,
	sanitizer *utils.ContentSanitizer,
	store core.ResultStore,
) (ports.Server, error) {
	mode := f.cfg.GetString("server.mode")
	version := f.cfg.GetString("app.version")

	switch mode {
	case "http":
		return httpapi.NewServer(f.cfg.GetServer(), analyzer, sanitizer, store, f.logger, version), nil
	case "smtp":
		return smtpgw.NewGateway(f.cfg.GetSMTP(), analyzer, store, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported server mode: %s", mode)
	}
}
