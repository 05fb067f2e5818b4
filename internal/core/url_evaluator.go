package core

import (
	"fmt"
	"strings"
)

// urlEvaluator treats the whole trimmed content as a single URL and runs the
// independent structural checks against it.
type urlEvaluator struct {
	patterns *PatternLibrary
}

func (e *urlEvaluator) evaluate(content, lower string) outcome {
	var (
		indicators    []ThreatIndicator
		contributions []RiskContribution
		explanations  []ExplanationSection
		totalRisk     int
	)

	url := strings.TrimSpace(content)

	// IPv4 literal anywhere in the string.
	if e.patterns.ipv4Pattern.MatchString(url) {
		totalRisk += 30
		indicators = append(indicators, urlIndicator("IP-based URL", 30,
			"URL uses IP address instead of domain name - common in phishing"))
		contributions = append(contributions, RiskContribution{
			Label: "IP-based URL", Value: 30, Category: "urls",
		})
	}

	// Known shorteners; first match wins, no stacking.
	for _, shortener := range e.patterns.urlShorteners {
		if strings.Contains(lower, shortener) {
			totalRisk += 20
			indicators = append(indicators, urlIndicator(
				fmt.Sprintf("URL shortener (%s)", shortener), 20,
				"URL shorteners can hide malicious destinations"))
			contributions = append(contributions, RiskContribution{
				Label: "URL Shortener", Value: 20, Category: "urls",
			})
			break
		}
	}

	// Suspicious TLDs; suffix match or tld+"/" inside the string, first
	// match wins.
	for _, tld := range e.patterns.suspiciousTLD {
		if strings.HasSuffix(lower, tld) || strings.Contains(lower, tld+"/") {
			totalRisk += 25
			indicators = append(indicators, urlIndicator(
				fmt.Sprintf("Suspicious TLD (%s)", tld), 25,
				"Free or cheap domain commonly used for malicious sites"))
			contributions = append(contributions, RiskContribution{
				Label: "Suspicious Domain", Value: 25, Category: "urls",
			})
			break
		}
	}

	// Path/host keywords: 10 points each, capped at 25.
	var foundKeywords []string
	for _, kw := range e.patterns.urlKeywords {
		if strings.Contains(lower, kw) {
			foundKeywords = append(foundKeywords, kw)
		}
	}
	if len(foundKeywords) > 0 {
		add := min(len(foundKeywords)*10, 25)
		totalRisk += add
		indicators = append(indicators, patternIndicator(
			fmt.Sprintf("Suspicious path keywords: %s",
				strings.Join(foundKeywords[:min(len(foundKeywords), 3)], ", ")),
			add,
			"URL contains keywords commonly used in phishing URLs"))
		contributions = append(contributions, RiskContribution{
			Label: "Phishing Keywords", Value: add, Category: "patterns",
		})
	}

	// Excessive subdomains add risk without a RiskContribution entry.
	subdomainCount := strings.Count(lower, ".") - 1
	if subdomainCount > 3 {
		totalRisk += 15
		indicators = append(indicators, patternIndicator(
			fmt.Sprintf("Excessive subdomains (%d)", subdomainCount), 15,
			"Many subdomains can indicate domain spoofing attempt"))
	}

	if len(indicators) > 0 {
		sev := SeverityMedium
		if totalRisk >= 50 {
			sev = SeverityHigh
		}
		explanations = append(explanations, ExplanationSection{
			Title: "URL Structure Analysis",
			Content: fmt.Sprintf("Identified %d suspicious characteristic(s) in this URL that are "+
				"commonly associated with malicious websites.", len(indicators)),
			Severity:   sev,
			Indicators: indicators[:min(len(indicators), 3)],
		})
	}

	threatType, severity := classifyURL(totalRisk)
	confidence := min(55+len(indicators)*8+totalRisk/4, 95)

	return outcome{
		indicators:    indicators,
		contributions: contributions,
		explanations:  explanations,
		totalRisk:     totalRisk,
		threatType:    threatType,
		severity:      severity,
		confidence:    confidence,
		safeExplanation: ExplanationSection{
			Title: "URL Analysis Complete",
			Content: "No obvious threat indicators detected. However, always verify URLs " +
				"before entering sensitive information.",
			Severity: SeveritySafe,
		},
	}
}
