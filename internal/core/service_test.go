package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *AnalysisService {
	t.Helper()
	return NewAnalysisService(zap.NewNop(), "1.0.0")
}

func TestAnalyze_AssemblesResult(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Analyze(context.Background(), &AnalysisRequest{
		ContentType: ContentTypeEmail,
		Content:     "Your account is suspended, verify immediately: http://192.168.1.5/login",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Len(t, res.InputHash, 16)
	assert.Equal(t, "1.0.0", res.ModelVersion)
	assert.False(t, res.AnalyzedAt.IsZero())
	assert.NotEqual(t, SeveritySafe, res.Severity)
	assert.GreaterOrEqual(t, res.RiskScore, 0)
	assert.LessOrEqual(t, res.RiskScore, 100)
	assert.GreaterOrEqual(t, res.Confidence, 0)
	assert.LessOrEqual(t, res.Confidence, 100)
	assert.LessOrEqual(t, len(res.Recommendations), 5)
	assert.NotEmpty(t, res.Explanation)
}

func TestAnalyze_Idempotent(t *testing.T) {
	svc := newTestService(t)
	req := &AnalysisRequest{
		ContentType: ContentTypeMessage,
		Content:     "URGENT winner! Claim your prize: http://bit.ly/abc",
	}

	first, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ThreatType, second.ThreatType)
	assert.Equal(t, first.Severity, second.Severity)
	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Indicators, second.Indicators)
	assert.Equal(t, first.Recommendations, second.Recommendations)
	assert.Equal(t, first.InputHash, second.InputHash)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAnalyze_SafeContent(t *testing.T) {
	svc := newTestService(t)

	for _, ct := range []ContentType{ContentTypeEmail, ContentTypeURL, ContentTypeMessage} {
		res, err := svc.Analyze(context.Background(), &AnalysisRequest{
			ContentType: ct,
			Content:     "hello, see you at 5pm",
		})
		require.NoError(t, err)

		assert.Equal(t, ThreatSafe, res.ThreatType, "content type %s", ct)
		assert.Equal(t, SeveritySafe, res.Severity, "content type %s", ct)
		assert.Zero(t, res.RiskScore, "content type %s", ct)
		assert.Empty(t, res.Indicators, "content type %s", ct)
		assert.Len(t, res.Recommendations, 3, "content type %s", ct)
		require.Len(t, res.Explanation, 1, "content type %s", ct)
		assert.Equal(t, SeveritySafe, res.Explanation[0].Severity, "content type %s", ct)
	}
}

func TestAnalyze_RiskScoreClamped(t *testing.T) {
	svc := newTestService(t)

	// Every message rule group fires: 45 + 20 + 25 = 90; add a pile of email
	// groups for the email path where 40+30+35+25 can reach 130 unclamped.
	res, err := svc.Analyze(context.Background(), &AnalysisRequest{
		ContentType: ContentTypeEmail,
		Content: "urgent immediately verify suspended locked compromised unauthorized act now final notice " +
			"password ssn cvv credit card billing username " +
			"you have won congratulations lottery wire transfer gift card " +
			"http://bit.ly/a http://10.0.0.1/x http://tinyurl.com/b",
	})
	require.NoError(t, err)

	assert.Equal(t, 100, res.RiskScore)
	assert.Equal(t, SeverityCritical, res.Severity)
}

func TestAnalyze_UnknownTypeFallsBackToMessageRules(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Analyze(context.Background(), &AnalysisRequest{
		ContentType: ContentType("pigeon"),
		Content:     "URGENT winner: claim your prize",
	})
	require.NoError(t, err)

	// Message trigger words fire, so the fallback produced a verdict rather
	// than an error.
	assert.NotEqual(t, ThreatSafe, res.ThreatType)
}

func TestHashContent(t *testing.T) {
	h := HashContent("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", h)
}
