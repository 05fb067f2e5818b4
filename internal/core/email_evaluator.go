package core

import (
	"fmt"
	"strings"
)

// emailEvaluator runs the four email rule groups: urgency keywords,
// credential-harvesting patterns, suspicious URLs, and social-engineering
// phrases. Total risk is the sum of the four capped group additions.
type emailEvaluator struct {
	patterns *PatternLibrary
}

func (e *emailEvaluator) evaluate(content, lower string) outcome {
	var (
		indicators    []ThreatIndicator
		contributions []RiskContribution
		explanations  []ExplanationSection
		totalRisk     int
	)

	// Urgency keywords: 8 points each, group capped at 40.
	var foundKeywords []string
	for _, kw := range e.patterns.urgencyKeywords {
		if kw.matches(lower) {
			foundKeywords = append(foundKeywords, kw.pattern)
		}
	}
	if len(foundKeywords) > 0 {
		add := min(len(foundKeywords)*8, 40)
		totalRisk += add
		for _, kw := range foundKeywords[:min(len(foundKeywords), 5)] {
			indicators = append(indicators, keywordIndicator(kw, 8,
				"Urgency/pressure language commonly used in phishing"))
		}
		contributions = append(contributions, RiskContribution{
			Label: "Urgency Language", Value: add, Category: "keywords",
		})
		sev := SeverityMedium
		if len(foundKeywords) > 3 {
			sev = SeverityHigh
		}
		// Slices the cumulative indicator list; only keyword indicators
		// exist at this point.
		explanations = append(explanations, ExplanationSection{
			Title: "Urgency & Pressure Tactics",
			Content: fmt.Sprintf("Detected %d phrases designed to create urgency and bypass critical thinking. "+
				"Phishing emails often pressure victims to act quickly.", len(foundKeywords)),
			Severity:   sev,
			Indicators: indicators[:min(len(indicators), 3)],
		})
	}

	// Credential-harvesting patterns: distinct patterns matched, 10 points
	// each, capped at 30. One fixed indicator regardless of count.
	credCount := 0
	for _, p := range e.patterns.credentialPatterns {
		if p.matches(lower) {
			credCount++
		}
	}
	if credCount > 0 {
		add := min(credCount*10, 30)
		totalRisk += add
		indicators = append(indicators, patternIndicator("Credential request detected", 15,
			"Email requests sensitive information like passwords or financial data"))
		contributions = append(contributions, RiskContribution{
			Label: "Credential Harvesting", Value: add, Category: "patterns",
		})
		explanations = append(explanations, ExplanationSection{
			Title: "Credential Harvesting Attempt",
			Content: "This email requests sensitive credentials or personal information. " +
				"Legitimate organizations never request passwords or full account details via email.",
			Severity: SeverityCritical,
		})
	}

	// Suspicious URLs: extracted from original-case content, each tested
	// against the ordered suspicion rules, first hit flags it. 15 points per
	// flagged URL, capped at 35.
	var suspiciousURLs []string
	for _, url := range e.patterns.emailURLPattern.FindAllString(content, -1) {
		lowered := strings.ToLower(url)
		for _, rule := range e.patterns.suspiciousURLRules {
			if rule.matches(lowered) {
				suspiciousURLs = append(suspiciousURLs, url)
				break
			}
		}
	}
	if len(suspiciousURLs) > 0 {
		add := min(len(suspiciousURLs)*15, 35)
		totalRisk += add
		for _, url := range suspiciousURLs[:min(len(suspiciousURLs), 3)] {
			indicators = append(indicators, urlIndicator(maskURL(url), 15,
				"URL contains suspicious patterns associated with phishing"))
		}
		contributions = append(contributions, RiskContribution{
			Label: "Suspicious Links", Value: add, Category: "urls",
		})
		explanations = append(explanations, ExplanationSection{
			Title: "Suspicious URLs Detected",
			Content: fmt.Sprintf("Found %d URL(s) with patterns commonly used in phishing attacks, "+
				"including URL shorteners, IP addresses, or deceptive domains.", len(suspiciousURLs)),
			Severity: SeverityHigh,
		})
	}

	// Social-engineering phrases: 12 points each, capped at 25. Single
	// behavioral indicator carrying the group total; no explanation section
	// for this group.
	socialCount := 0
	for _, p := range e.patterns.socialPhrases {
		if p.matches(lower) {
			socialCount++
		}
	}
	if socialCount > 0 {
		add := min(socialCount*12, 25)
		totalRisk += add
		indicators = append(indicators, behavioralIndicator("Social engineering tactics", add,
			"Content uses manipulation techniques to gain trust or trigger emotional response"))
		contributions = append(contributions, RiskContribution{
			Label: "Social Engineering", Value: add, Category: "behavioral",
		})
	}

	threatType, severity := classifyEmail(totalRisk, len(foundKeywords) > 0, len(suspiciousURLs) > 0)
	confidence := min(60+len(indicators)*5+totalRisk/5, 98)

	return outcome{
		indicators:    indicators,
		contributions: contributions,
		explanations:  explanations,
		totalRisk:     totalRisk,
		threatType:    threatType,
		severity:      severity,
		confidence:    confidence,
		safeExplanation: ExplanationSection{
			Title:    "Analysis Complete",
			Content:  "No significant threat indicators were detected in this content.",
			Severity: SeveritySafe,
		},
	}
}
