package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSummary(t *testing.T) {
	t.Run("safe verdict uses the fixed sentence", func(t *testing.T) {
		got := generateSummary(ThreatSafe, SeveritySafe, 0, 0)
		assert.Contains(t, got, "No significant threats detected")
	})

	t.Run("threat verdict interpolates phrases and counts", func(t *testing.T) {
		got := generateSummary(ThreatPhishing, SeverityCritical, 82, 6)
		assert.Contains(t, got, "extremely high-risk")
		assert.Contains(t, got, "phishing attack")
		assert.Contains(t, got, "6 threat indicator(s)")
		assert.Contains(t, got, "82%")
	})

	t.Run("unmapped threat type falls back", func(t *testing.T) {
		got := generateSummary(ThreatUnknown, SeverityLow, 15, 1)
		assert.Contains(t, got, "low-risk suspicious activity")
	})
}

func TestGenerateRecommendations(t *testing.T) {
	t.Run("critical phishing accumulates and truncates to five", func(t *testing.T) {
		recs := generateRecommendations(ThreatPhishing, SeverityCritical)
		// 3 severity directives + 3 phishing directives + block-source,
		// truncated to 5 preserving construction order.
		assert.Len(t, recs, 5)
		assert.Equal(t, "Do NOT click any links in this content", recs[0])
		assert.Equal(t, "If you entered credentials, change your password immediately", recs[3])
	})

	t.Run("medium url threat blocks the source", func(t *testing.T) {
		recs := generateRecommendations(ThreatURL, SeverityMedium)
		assert.Equal(t, []string{"Block the sender or source of this content"}, recs)
	})

	t.Run("low severity discards accumulated directives", func(t *testing.T) {
		recs := generateRecommendations(ThreatUnknown, SeverityLow)
		assert.Equal(t, []string{
			"Always verify sender identity before responding",
			"Be cautious of unsolicited requests for information",
			"When in doubt, contact the organization directly using official channels",
		}, recs)
	})

	t.Run("safe verdict gets the generic directives", func(t *testing.T) {
		recs := generateRecommendations(ThreatSafe, SeveritySafe)
		assert.Len(t, recs, 3)
	})
}

func TestFalsePositiveLikelihood(t *testing.T) {
	assert.Equal(t, FPLow, falsePositiveLikelihood(85))
	assert.Equal(t, FPMedium, falsePositiveLikelihood(84))
	assert.Equal(t, FPMedium, falsePositiveLikelihood(65))
	assert.Equal(t, FPHigh, falsePositiveLikelihood(64))
}
