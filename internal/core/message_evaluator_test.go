package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalMessage(t *testing.T, content string) outcome {
	t.Helper()
	e := &messageEvaluator{patterns: NewPatternLibrary()}
	return e.evaluate(content, strings.ToLower(content))
}

func TestMessageEvaluator_SmishingScenario(t *testing.T) {
	out := evalMessage(t, "URGENT: you are a winner! Claim your prize at http://bit.ly/abc to get the cash")

	// Four trigger words capped at 45, embedded link +20, financial lure +25.
	assert.Equal(t, 90, out.totalRisk)
	assert.Equal(t, ThreatSocialEngineering, out.threatType)
	assert.Equal(t, SeverityCritical, out.severity)
	assert.Equal(t, 95, out.confidence)

	// Three capped keyword indicators plus the URL and behavioral ones.
	require.Len(t, out.indicators, 5)

	// The message explanation carries the full indicator list, not the
	// first three.
	require.Len(t, out.explanations, 1)
	assert.Equal(t, "SMS/Message Analysis", out.explanations[0].Title)
	assert.Equal(t, SeverityHigh, out.explanations[0].Severity)
	assert.Len(t, out.explanations[0].Indicators, 5)
}

func TestMessageEvaluator_FinancialLureFlat(t *testing.T) {
	out := evalMessage(t, "send $100 by bank transfer, we accept bitcoin and crypto payment")

	// Several financial patterns match but the lure adds a flat 25 once.
	var behavioral []ThreatIndicator
	for _, ind := range out.indicators {
		if ind.Kind == IndicatorBehavioral {
			behavioral = append(behavioral, ind)
		}
	}
	require.Len(t, behavioral, 1)
	assert.Equal(t, 25, behavioral[0].RiskContribution)
	assert.Equal(t, 25, out.totalRisk)
	assert.Equal(t, ThreatSpam, out.threatType)
	assert.Equal(t, SeverityMedium, out.severity)
}

func TestMessageEvaluator_EmbeddedLinkCount(t *testing.T) {
	out := evalMessage(t, "see http://a.example/x and https://b.example/y")

	require.Len(t, out.indicators, 1)
	assert.Equal(t, "2 URL(s) detected", out.indicators[0].Value)
	assert.Equal(t, 20, out.totalRisk)

	require.Len(t, out.contributions, 1)
	assert.Equal(t, "Embedded Links", out.contributions[0].Label)
}

func TestMessageEvaluator_NoSignal(t *testing.T) {
	out := evalMessage(t, "hello, see you at 5pm")

	assert.Zero(t, out.totalRisk)
	assert.Empty(t, out.indicators)
	assert.Equal(t, ThreatSafe, out.threatType)
	assert.Equal(t, SeveritySafe, out.severity)
	assert.Equal(t, 50, out.confidence)
}
