package smtpgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"time"

	"github.com/cybershield/threat-analyzer/internal/allowlist"
	"github.com/cybershield/threat-analyzer/internal/config"
	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// Gateway is an SMTP content filter boundary: it scores each inbound message
// with the email rules, stamps verdict headers, and relays the message to the
// upstream MTA. Critically-rated mail can be rejected outright.
type Gateway struct {
	cfg      config.SMTPConfig
	analyzer *core.AnalysisService
	store    core.ResultStore
	trusted  *allowlist.Checker
	logger   *zap.Logger
	server   *smtp.Server
}

// NewGateway creates a new SMTP gateway.
func NewGateway(cfg config.SMTPConfig, analyzer *core.AnalysisService, store core.ResultStore, logger *zap.Logger) *Gateway {
	return &Gateway{
		cfg:      cfg,
		analyzer: analyzer,
		store:    store,
		trusted:  allowlist.NewChecker(cfg.TrustedDomains, logger),
		logger:   logger,
	}
}

// Start starts the SMTP gateway.
func (g *Gateway) Start() error {
	g.server = smtp.NewServer(&smtpBackend{gateway: g})
	g.server.Addr = g.cfg.ListenAddress
	g.server.Domain = "localhost"
	g.server.ReadTimeout = 30 * time.Second
	g.server.WriteTimeout = 30 * time.Second
	g.server.MaxMessageBytes = 30 * 1024 * 1024
	g.server.MaxRecipients = 50
	g.server.AllowInsecureAuth = true

	g.logger.Info("SMTP gateway starting", zap.String("address", g.cfg.ListenAddress))

	go func() {
		if err := g.server.ListenAndServe(); err != nil && err != smtp.ErrServerClosed {
			g.logger.Error("SMTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the SMTP gateway.
func (g *Gateway) Stop() error {
	if g.server != nil {
		return g.server.Close()
	}
	return nil
}

// relay forwards the stamped message to the upstream MTA.
func (g *Gateway) relay(sender string, recipients []string, data []byte) error {
	addr := fmt.Sprintf("%s:%d", g.cfg.UpstreamAddress, g.cfg.UpstreamPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to upstream MTA: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	accepted := false
	for _, rcpt := range recipients {
		if err := c.Rcpt(rcpt, nil); err != nil {
			g.logger.Warn("RCPT TO failed", zap.String("recipient", rcpt), zap.Error(err))
			continue
		}
		accepted = true
	}
	if !accepted {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		g.logger.Warn("QUIT failed", zap.Error(err))
	}
	return nil
}

// stampVerdict prepends the verdict headers to the raw message. New headers
// at the top of the header block keep the original message bytes intact.
func (g *Gateway) stampVerdict(raw []byte, result *core.AnalysisResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s\r\n", g.cfg.SeverityHeader, result.Severity)
	fmt.Fprintf(&buf, "%s: %d\r\n", g.cfg.ScoreHeader, result.RiskScore)
	fmt.Fprintf(&buf, "%s: %s\r\n", g.cfg.TypeHeader, result.ThreatType)
	buf.Write(raw)
	return buf.Bytes()
}

// persist stores the anonymized record; the raw message never reaches the store.
func (g *Gateway) persist(ctx context.Context, content string, result *core.AnalysisResult) {
	if g.store == nil {
		return
	}
	detail, err := json.Marshal(result)
	if err != nil {
		g.logger.Error("Failed to serialize analysis result", zap.Error(err))
		return
	}
	err = g.store.Save(ctx, &core.AnalysisRecord{
		ID:               result.ID,
		InputHash:        core.HashContent(content),
		InputType:        core.ContentTypeEmail,
		ThreatType:       result.ThreatType,
		Severity:         result.Severity,
		RiskScore:        result.RiskScore,
		Confidence:       result.Confidence,
		Summary:          result.Summary,
		AnalyzedAt:       result.AnalyzedAt,
		ProcessingTimeMs: result.ProcessingTimeMs,
		ModelVersion:     result.ModelVersion,
		Detail:           detail,
	})
	if err != nil {
		g.logger.Error("Failed to persist analysis record", zap.Error(err))
	}
}

// smtpBackend implements the go-smtp Backend interface.
type smtpBackend struct {
	gateway *Gateway
}

func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{gateway: b.gateway}, nil
}

// smtpSession implements the go-smtp Session interface.
type smtpSession struct {
	gateway    *Gateway
	sender     string
	recipients []string
}

func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = nil
}

func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data scores the message and either rejects it or relays it upstream with
// verdict headers.
func (s *smtpSession) Data(r io.Reader) error {
	g := s.gateway

	raw, err := io.ReadAll(r)
	if err != nil {
		g.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	// Trusted senders bypass scoring and relay unmodified.
	if g.trusted.IsTrusted(s.sender) {
		g.logger.Debug("Relaying mail from trusted sender", zap.String("from", s.sender))
		return g.relay(s.sender, s.recipients, raw)
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		g.logger.Error("Failed to parse message", zap.Error(err))
		return err
	}

	text, err := extractTextContent(msg)
	if err != nil {
		g.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}
	content := msg.Header.Get("Subject") + "\n\n" + text

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := g.analyzer.Analyze(ctx, &core.AnalysisRequest{
		ContentType: core.ContentTypeEmail,
		Content:     content,
	})
	if err != nil {
		// Fail open: an engine error must not bounce legitimate mail.
		g.logger.Error("Analysis failed, passing message through", zap.Error(err))
		return g.relay(s.sender, s.recipients, raw)
	}

	g.persist(ctx, content, result)

	if result.Severity == core.SeverityCritical && g.cfg.BlockCritical {
		g.logger.Info("Rejecting message",
			zap.String("from", s.sender),
			zap.String("threat_type", string(result.ThreatType)),
			zap.Int("risk_score", result.RiskScore))
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 7, 1},
			Message:      fmt.Sprintf("Rejected as threat (risk score: %d)", result.RiskScore),
		}
	}

	if err := g.relay(s.sender, s.recipients, g.stampVerdict(raw, result)); err != nil {
		g.logger.Error("Failed to relay message", zap.Error(err), zap.String("from", s.sender))
		return err
	}

	g.logger.Info("Processed message",
		zap.String("from", s.sender),
		zap.String("severity", string(result.Severity)),
		zap.Int("risk_score", result.RiskScore))
	return nil
}

func (s *smtpSession) Logout() error {
	return nil
}
