package generators

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PSavvateev/cs-data-generator/internal/models"
)

func qaInteractions(n int) []models.Interaction {
	base := time.Date(2024, 2, 5, 10, 0, 0, 0, time.UTC)
	interactions := make([]models.Interaction, 0, n)
	for i := 0; i < n; i++ {
		interactions = append(interactions, models.Interaction{
			InteractionID:      fmt.Sprintf("INT-%06d", i+1),
			Channel:            models.ChannelEmail,
			InteractionCreated: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return interactions
}

func TestQaGeneratorSampleSize(t *testing.T) {
	cfg := testConfig()
	cfg.QA.SampleSize = 0.1
	interactions := qaInteractions(200)

	entries, violations := NewQaGenerator(cfg, rand.New(rand.NewSource(42))).Generate(interactions)
	assert.Empty(t, violations)
	assert.Len(t, entries, 20)

	// Sequential eval ids, each referencing a distinct interaction.
	seen := make(map[string]bool)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("QA-%06d", i+1), e.EvalID)
		assert.False(t, seen[e.InteractionID], "interaction %s evaluated twice", e.InteractionID)
		seen[e.InteractionID] = true
	}
}

func TestQaGeneratorZeroSample(t *testing.T) {
	cfg := testConfig()
	cfg.QA.SampleSize = 0.03

	// 10 interactions at a 3% sample floors to zero evaluations.
	entries, violations := NewQaGenerator(cfg, rand.New(rand.NewSource(42))).Generate(qaInteractions(10))
	assert.Empty(t, violations)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestQaGeneratorCriticalFlagsZeroScore(t *testing.T) {
	cfg := testConfig()
	cfg.QA.SampleSize = 1.0
	// Force frequent criticals so the rule is actually exercised.
	cfg.QA.CustomerCriticalProb = 0.5
	cfg.QA.BusinessCriticalProb = 0.3
	cfg.QA.ComplianceCriticalProb = 0.2

	entries, violations := NewQaGenerator(cfg, rand.New(rand.NewSource(42))).Generate(qaInteractions(200))
	assert.Empty(t, violations)
	require.Len(t, entries, 200)

	var criticals int
	for _, e := range entries {
		if e.HasCriticalFlags() {
			criticals++
			assert.Zero(t, e.QAScore, "eval %s has critical flags but nonzero score", e.EvalID)
		} else {
			assert.GreaterOrEqual(t, e.QAScore, cfg.QA.Score.Min)
			assert.LessOrEqual(t, e.QAScore, cfg.QA.Score.Max)
		}
	}
	assert.Greater(t, criticals, 0)
}

func TestQaGeneratorDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.QA.SampleSize = 0.2
	interactions := qaInteractions(100)

	a, _ := NewQaGenerator(cfg, rand.New(rand.NewSource(42))).Generate(interactions)
	b, _ := NewQaGenerator(cfg, rand.New(rand.NewSource(42))).Generate(interactions)
	assert.Equal(t, a, b)
}

func TestSummarizeQa(t *testing.T) {
	entries := []models.QaEntry{
		{EvalID: "QA-000001", QAScore: 1.0},
		{EvalID: "QA-000002", QAScore: 0.8},
		{EvalID: "QA-000003", QAScore: 0.0, CustomerCritical: 1},
		{EvalID: "QA-000004", QAScore: 0.0, ComplianceCritical: 1},
	}

	m := SummarizeQa(entries)
	assert.Equal(t, 4, m.TotalEvaluations)
	assert.Equal(t, 0.25, m.CustomerCriticalRate)
	assert.Equal(t, 0.25, m.ComplianceCriticalRate)
	assert.Equal(t, 0.0, m.BusinessCriticalRate)
	assert.Equal(t, 0.5, m.AnyCriticalRate)
	assert.Equal(t, 0.45, m.OverallAvgScore)
	assert.InDelta(t, 0.9, m.AvgScoreNonCritical, 1e-9)
	assert.Equal(t, 1, m.PerfectScoreCount)

	empty := SummarizeQa(nil)
	assert.Zero(t, empty.TotalEvaluations)
}
