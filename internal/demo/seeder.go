package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/cybershield/threat-analyzer/internal/config"
	"github.com/cybershield/threat-analyzer/internal/core"
	"go.uber.org/zap"
)

// sampleInput is one canned piece of content the seeder can analyze.
type sampleInput struct {
	contentType core.ContentType
	content     string
}

// samples span the full verdict range so a fresh dashboard has data in every
// band. Weighted by repetition: benign content appears more than once.
var samples = []sampleInput{
	{core.ContentTypeEmail, "URGENT security alert: unusual activity detected, your account will be suspended. Verify your password and credit card billing immediately, click here."},
	{core.ContentTypeEmail, "Congratulations! You have won the lottery. A wire transfer of your million dollars inheritance awaits, act now before it expires."},
	{core.ContentTypeEmail, "Please verify your login at http://192.168.10.5/secure-login.php?id=4 or your account will be locked."},
	{core.ContentTypeEmail, "Hi team, attaching the quarterly report ahead of Thursday's review. Let me know if the numbers need another pass."},
	{core.ContentTypeEmail, "Your invoice for March is attached. Payment was received, no action needed."},
	{core.ContentTypeURL, "http://bit.ly/a8f2xk"},
	{core.ContentTypeURL, "http://203.0.113.50/paypal-login-verify.tk"},
	{core.ContentTypeURL, "https://secure-account-update.xyz/signin"},
	{core.ContentTypeURL, "https://docs.example.com/guides/setup"},
	{core.ContentTypeMessage, "URGENT: your package is suspended. Click http://tinyurl.com/x2 to claim, $50 fee expires today."},
	{core.ContentTypeMessage, "You are our lucky winner! Claim your prize now, just a small bitcoin transfer to verify."},
	{core.ContentTypeMessage, "Running 10 minutes late, see you at the cafe."},
	{core.ContentTypeMessage, "Your verification code is 418223. It expires in 10 minutes."},
}

// Seeder populates an empty store with demo analyses so the dashboard is not
// blank on first run.
type Seeder struct {
	cfg      config.DemoConfig
	analyzer *core.AnalysisService
	store    core.ResultStore
	logger   *zap.Logger
}

// NewSeeder creates a new demo-data seeder.
func NewSeeder(cfg config.DemoConfig, analyzer *core.AnalysisService, store core.ResultStore, logger *zap.Logger) *Seeder {
	return &Seeder{cfg: cfg, analyzer: analyzer, store: store, logger: logger}
}

// Seed analyzes a deterministic random draw of the sample inputs, backdates
// the records across the last 30 days, and stores them. A store that already
// holds records is left untouched.
func (s *Seeder) Seed(ctx context.Context) error {
	if !s.cfg.Enabled {
		return nil
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check store before seeding: %w", err)
	}
	if count > 0 {
		s.logger.Debug("Store already has records, skipping demo seed", zap.Int("count", count))
		return nil
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	now := time.Now().UTC()

	for i := 0; i < s.cfg.Records; i++ {
		sample := samples[rng.Intn(len(samples))]

		result, err := s.analyzer.Analyze(ctx, &core.AnalysisRequest{
			ContentType: sample.contentType,
			Content:     sample.content,
		})
		if err != nil {
			return fmt.Errorf("failed to analyze demo sample: %w", err)
		}

		// Spread the records over the trailing month.
		result.AnalyzedAt = now.Add(-time.Duration(rng.Intn(30*24*60)) * time.Minute)

		detail, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to serialize demo result: %w", err)
		}

		rec := &core.AnalysisRecord{
			ID:               result.ID,
			InputHash:        core.HashContent(sample.content),
			InputType:        sample.contentType,
			ThreatType:       result.ThreatType,
			Severity:         result.Severity,
			RiskScore:        result.RiskScore,
			Confidence:       result.Confidence,
			Summary:          result.Summary,
			AnalyzedAt:       result.AnalyzedAt,
			ProcessingTimeMs: result.ProcessingTimeMs,
			ModelVersion:     result.ModelVersion,
			Detail:           detail,
		}
		if err := s.store.Save(ctx, rec); err != nil {
			return fmt.Errorf("failed to save demo record: %w", err)
		}
	}

	s.logger.Info("Seeded demo records", zap.Int("count", s.cfg.Records))
	return nil
}
