package core

import (
	"fmt"
)

// messageEvaluator is tuned for short SMS-style text: fewer trigger words
// weighted higher, a flat penalty for embedded links, and a financial-lure
// check.
type messageEvaluator struct {
	patterns *PatternLibrary
}

func (e *messageEvaluator) evaluate(content, lower string) outcome {
	var (
		indicators    []ThreatIndicator
		contributions []RiskContribution
		explanations  []ExplanationSection
		totalRisk     int
	)

	// Trigger words: 12 points each, capped at 45.
	var found []string
	for _, kw := range e.patterns.messageTriggers {
		if kw.matches(lower) {
			found = append(found, kw.pattern)
		}
	}
	if len(found) > 0 {
		add := min(len(found)*12, 45)
		totalRisk += add
		for _, kw := range found[:min(len(found), 3)] {
			indicators = append(indicators, keywordIndicator(kw, 12,
				"Common SMS phishing trigger word"))
		}
		contributions = append(contributions, RiskContribution{
			Label: "Phishing Keywords", Value: add, Category: "keywords",
		})
	}

	// Any embedded URL: flat 20 points.
	urls := e.patterns.messageURLPattern.FindAllString(content, -1)
	if len(urls) > 0 {
		totalRisk += 20
		indicators = append(indicators, urlIndicator(
			fmt.Sprintf("%d URL(s) detected", len(urls)), 20,
			"Text messages with links are often used for phishing"))
		contributions = append(contributions, RiskContribution{
			Label: "Embedded Links", Value: 20, Category: "urls",
		})
	}

	// Financial references: flat 25 points when any pattern matches,
	// regardless of how many.
	for _, p := range e.patterns.financialPatterns {
		if p.matches(lower) {
			totalRisk += 25
			indicators = append(indicators, behavioralIndicator("Financial reference", 25,
				"Message mentions money or financial transactions"))
			contributions = append(contributions, RiskContribution{
				Label: "Financial Lure", Value: 25, Category: "behavioral",
			})
			break
		}
	}

	if len(indicators) > 0 {
		sev := SeverityMedium
		if totalRisk >= 50 {
			sev = SeverityHigh
		}
		// Carries the full indicator list, not capped to 3.
		explanations = append(explanations, ExplanationSection{
			Title: "SMS/Message Analysis",
			Content: fmt.Sprintf("This message exhibits %d characteristic(s) commonly found in "+
				"smishing (SMS phishing) attacks.", len(indicators)),
			Severity:   sev,
			Indicators: indicators,
		})
	}

	threatType, severity := classifyMessage(totalRisk)
	confidence := min(50+len(indicators)*10+totalRisk/5, 95)

	return outcome{
		indicators:    indicators,
		contributions: contributions,
		explanations:  explanations,
		totalRisk:     totalRisk,
		threatType:    threatType,
		severity:      severity,
		confidence:    confidence,
		safeExplanation: ExplanationSection{
			Title:    "Message Analysis Complete",
			Content:  "No significant threat patterns detected in this message.",
			Severity: SeveritySafe,
		},
	}
}
