package smtpgw

import (
	"bytes"
	"net/mail"
	"strings"
	"testing"

	"github.com/cybershield/threat-analyzer/internal/config"
	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractTextContent_Plain(t *testing.T) {
	raw := "From: a@example.com\r\nSubject: hi\r\n\r\nplain body here\r\n"
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	text, err := extractTextContent(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "plain body here")
}

func TestExtractTextContent_Multipart(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		`Content-Type: multipart/alternative; boundary="XYZ"`,
		"",
		"--XYZ",
		"Content-Type: text/plain",
		"",
		"the plain part",
		"--XYZ",
		"Content-Type: text/html",
		"",
		"<p>the html part</p>",
		"--XYZ--",
		"",
	}, "\r\n")
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	text, err := extractTextContent(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "the plain part")
	assert.NotContains(t, text, "html part")
}

func TestExtractTextContent_NoTextPart(t *testing.T) {
	raw := strings.Join([]string{
		"From: a@example.com",
		`Content-Type: multipart/mixed; boundary="XYZ"`,
		"",
		"--XYZ",
		"Content-Type: application/pdf",
		"",
		"%PDF-1.4",
		"--XYZ--",
		"",
	}, "\r\n")
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)

	text, err := extractTextContent(msg)
	require.NoError(t, err)
	assert.Equal(t, "[No text content found in multipart message]", text)
}

func TestStampVerdict(t *testing.T) {
	g := NewGateway(config.SMTPConfig{
		SeverityHeader: "X-Threat-Severity",
		ScoreHeader:    "X-Threat-Score",
		TypeHeader:     "X-Threat-Type",
	}, core.NewAnalysisService(zap.NewNop(), "heuristic-v2.1"), nil, zap.NewNop())

	raw := []byte("Subject: hello\r\n\r\nbody\r\n")
	stamped := g.stampVerdict(raw, &core.AnalysisResult{
		Severity:   core.SeverityMedium,
		RiskScore:  35,
		ThreatType: core.ThreatSpam,
	})

	assert.True(t, bytes.HasPrefix(stamped,
		[]byte("X-Threat-Severity: medium\r\nX-Threat-Score: 35\r\nX-Threat-Type: spam\r\n")))
	assert.True(t, bytes.HasSuffix(stamped, raw))

	msg, err := mail.ReadMessage(bytes.NewReader(stamped))
	require.NoError(t, err)
	assert.Equal(t, "medium", msg.Header.Get("X-Threat-Severity"))
	assert.Equal(t, "hello", msg.Header.Get("Subject"))
}
