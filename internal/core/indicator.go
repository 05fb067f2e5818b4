package core

import (
	"strings"
)

// maskURL redacts a URL for display. The domain keeps its first 15 and last 5
// characters when longer than 20; the path is shown (first 20 chars) only
// when its raw length exceeds 20, otherwise it is dropped entirely. Masking
// never fails: anything without a scheme separator degrades to plain
// truncation.
func maskURL(url string) string {
	proto, rest, ok := strings.Cut(url, "://")
	if !ok {
		if len(url) > 30 {
			return url[:30] + "..."
		}
		return url
	}

	domain, path, hasPath := strings.Cut(rest, "/")
	if len(domain) > 20 {
		domain = domain[:15] + "..." + domain[len(domain)-5:]
	}

	masked := proto + "://" + domain
	if hasPath && len(path) > 20 {
		masked += "/" + path[:20] + "..."
	}
	return masked
}

func keywordIndicator(kw string, weight int, description string) ThreatIndicator {
	return ThreatIndicator{
		Kind:             IndicatorKeyword,
		Value:            `"` + kw + `"`,
		RiskContribution: weight,
		Description:      description,
	}
}

func urlIndicator(value string, weight int, description string) ThreatIndicator {
	return ThreatIndicator{
		Kind:             IndicatorURL,
		Value:            value,
		RiskContribution: weight,
		Description:      description,
	}
}

func patternIndicator(value string, weight int, description string) ThreatIndicator {
	return ThreatIndicator{
		Kind:             IndicatorPattern,
		Value:            value,
		RiskContribution: weight,
		Description:      description,
	}
}

func behavioralIndicator(value string, weight int, description string) ThreatIndicator {
	return ThreatIndicator{
		Kind:             IndicatorBehavioral,
		Value:            value,
		RiskContribution: weight,
		Description:      description,
	}
}
