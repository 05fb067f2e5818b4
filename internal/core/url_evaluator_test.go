package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalURL(t *testing.T, content string) outcome {
	t.Helper()
	e := &urlEvaluator{patterns: NewPatternLibrary()}
	return e.evaluate(content, strings.ToLower(content))
}

func TestURLEvaluator_Shortener(t *testing.T) {
	out := evalURL(t, "bit.ly/xyz123")

	// Shortener only: +20, medium url_threat.
	assert.Equal(t, 20, out.totalRisk)
	assert.Equal(t, ThreatURL, out.threatType)
	assert.Equal(t, SeverityMedium, out.severity)
	assert.Equal(t, 68, out.confidence)

	require.Len(t, out.indicators, 1)
	assert.Equal(t, "URL shortener (bit.ly)", out.indicators[0].Value)
}

func TestURLEvaluator_StackedChecks(t *testing.T) {
	out := evalURL(t, "http://192.168.0.1.tk/login-secure-update")

	// IP literal (+30), suspicious TLD via ".tk/" (+25), and three path
	// keywords (login, secure, update) capped at 25. The shorteners list
	// does not match.
	assert.Equal(t, 80, out.totalRisk)
	assert.Equal(t, ThreatURL, out.threatType)
	assert.Equal(t, SeverityCritical, out.severity)

	require.Len(t, out.explanations, 1)
	assert.Equal(t, "URL Structure Analysis", out.explanations[0].Title)
	assert.Equal(t, SeverityHigh, out.explanations[0].Severity)
	assert.Len(t, out.explanations[0].Indicators, 3)
}

func TestURLEvaluator_KeywordListingCappedAtThree(t *testing.T) {
	out := evalURL(t, "https://example.org/login/signin/verify/secure")

	var kwIndicator *ThreatIndicator
	for i := range out.indicators {
		if out.indicators[i].Kind == IndicatorPattern {
			kwIndicator = &out.indicators[i]
		}
	}
	require.NotNil(t, kwIndicator)
	// Four keywords matched, group capped at 25, listing capped at three.
	assert.Equal(t, "Suspicious path keywords: login, signin, verify", kwIndicator.Value)
	assert.Equal(t, 25, kwIndicator.RiskContribution)
}

func TestURLEvaluator_SubdomainRiskWithoutContribution(t *testing.T) {
	out := evalURL(t, "http://a.b.c.d.e.example.com")

	// Six dots minus one gives five subdomains: +15 risk and one indicator,
	// but no RiskContribution entry.
	assert.Equal(t, 15, out.totalRisk)
	require.Len(t, out.indicators, 1)
	assert.Equal(t, "Excessive subdomains (5)", out.indicators[0].Value)
	assert.Empty(t, out.contributions)
	assert.Equal(t, ThreatUnknown, out.threatType)
	assert.Equal(t, SeverityLow, out.severity)
}

func TestURLEvaluator_Clean(t *testing.T) {
	out := evalURL(t, "https://example.org/docs")

	assert.Zero(t, out.totalRisk)
	assert.Empty(t, out.indicators)
	assert.Empty(t, out.explanations)
	assert.Equal(t, ThreatSafe, out.threatType)
	assert.Equal(t, SeveritySafe, out.severity)
}
