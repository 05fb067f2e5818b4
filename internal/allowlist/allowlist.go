package allowlist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether a sender address belongs to a trusted domain. Mail
// from trusted domains skips scoring entirely at the SMTP boundary.
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a checker over the given domain list. Domains are
// compared case-insensitively.
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			normalized = append(normalized, domain)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized trusted-domain allowlist", zap.Strings("domains", normalized))
	}

	return &Checker{domains: normalized, logger: logger}
}

// IsTrusted reports whether the address's domain is on the allowlist.
func (c *Checker) IsTrusted(addr string) bool {
	if len(c.domains) == 0 {
		return false
	}

	_, domain, found := strings.Cut(addr, "@")
	if !found || domain == "" {
		return false
	}
	domain = strings.ToLower(strings.TrimSuffix(domain, ">"))

	for _, trusted := range c.domains {
		if trusted == domain {
			if c.logger != nil {
				c.logger.Debug("Sender domain is trusted", zap.String("domain", domain))
			}
			return true
		}
	}
	return false
}
