package demo

import (
	"context"
	"testing"
	"time"

	"github.com/cybershield/threat-analyzer/internal/adapters/store"
	"github.com/cybershield/threat-analyzer/internal/config"
	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeederEnv(t *testing.T, cfg config.DemoConfig) (*Seeder, *store.MemoryStore) {
	t.Helper()
	logger := zap.NewNop()
	st := store.NewMemoryStore(0, time.Hour, logger)
	t.Cleanup(st.Stop)
	analyzer := core.NewAnalysisService(logger, "heuristic-v2.1")
	return NewSeeder(cfg, analyzer, st, logger), st
}

func TestSeeder_PopulatesEmptyStore(t *testing.T) {
	s, st := newSeederEnv(t, config.DemoConfig{Enabled: true, Seed: 42, Records: 50})
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, count)

	// The sample pool spans safe and threat content
	m, err := st.Metrics(ctx)
	require.NoError(t, err)
	assert.Greater(t, m.TotalThreats, 0)
	assert.Less(t, m.TotalThreats, 50)

	recs, _, err := st.List(ctx, core.ListFilter{PageSize: 50})
	require.NoError(t, err)
	for _, rec := range recs {
		assert.Len(t, rec.InputHash, 64)
		assert.NotEmpty(t, rec.Detail)
	}
}

func TestSeeder_SkipsNonEmptyStore(t *testing.T) {
	s, st := newSeederEnv(t, config.DemoConfig{Enabled: true, Seed: 42, Records: 50})
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, &core.AnalysisRecord{
		ID: "existing", InputHash: "x", Severity: core.SeverityHigh, AnalyzedAt: time.Now(),
	}))

	require.NoError(t, s.Seed(ctx))

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSeeder_DisabledDoesNothing(t *testing.T) {
	s, st := newSeederEnv(t, config.DemoConfig{Enabled: false, Seed: 42, Records: 50})
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
