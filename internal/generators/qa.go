package generators

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// QaGenerator produces quality-assurance evaluations for a sample of the
// interactions.
type QaGenerator struct {
	cfg       *config.Config
	rng       *rand.Rand
	validator *models.ModelValidator
}

// NewQaGenerator returns a QA generator drawing from rng.
func NewQaGenerator(cfg *config.Config, rng *rand.Rand) *QaGenerator {
	return &QaGenerator{
		cfg:       cfg,
		rng:       rng,
		validator: models.NewModelValidator(),
	}
}

// Generate evaluates floor(len(interactions) × sample size) interactions,
// sampled uniformly without replacement from the set ordered by creation
// time. A zero sample returns an empty, well-formed table. Critical flags
// are independent Bernoulli draws; any set flag forces the score to 0.0.
func (g *QaGenerator) Generate(interactions []models.Interaction) ([]models.QaEntry, []string) {
	numEvaluations := int(float64(len(interactions)) * g.cfg.QA.SampleSize)
	if numEvaluations == 0 {
		return []models.QaEntry{}, nil
	}

	sorted := make([]*models.Interaction, len(interactions))
	for i := range interactions {
		sorted[i] = &interactions[i]
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].InteractionCreated.Before(sorted[b].InteractionCreated)
	})

	indices := g.rng.Perm(len(sorted))[:numEvaluations]
	sort.Ints(indices)

	entries := make([]models.QaEntry, 0, numEvaluations)
	var violations []string

	for i, idx := range indices {
		in := sorted[idx]

		customerCritical := g.flag(g.cfg.QA.CustomerCriticalProb)
		businessCritical := g.flag(g.cfg.QA.BusinessCriticalProb)
		complianceCritical := g.flag(g.cfg.QA.ComplianceCriticalProb)

		score := 0.0
		if customerCritical == 0 && businessCritical == 0 && complianceCritical == 0 {
			score = g.score()
		}

		entry := models.QaEntry{
			EvalID:             fmt.Sprintf("QA-%06d", i+1),
			InteractionID:      in.InteractionID,
			QAScore:            score,
			CustomerCritical:   customerCritical,
			BusinessCritical:   businessCritical,
			ComplianceCritical: complianceCritical,
		}

		for _, msg := range g.validator.ValidateQaEntry(&entry) {
			violations = append(violations, "qa "+entry.EvalID+": "+msg)
		}
		entries = append(entries, entry)
	}

	return entries, violations
}

func (g *QaGenerator) flag(probability float64) int {
	if g.rng.Float64() < probability {
		return 1
	}
	return 0
}

func (g *QaGenerator) score() float64 {
	p := g.cfg.QA.Score
	score := g.rng.NormFloat64()*p.Std + p.Mean
	return sampling.Round2(sampling.Clamp(score, p.Min, p.Max))
}

// QaMetrics summarizes a QA table.
type QaMetrics struct {
	TotalEvaluations       int
	CustomerCriticalRate   float64
	BusinessCriticalRate   float64
	ComplianceCriticalRate float64
	AnyCriticalRate        float64
	OverallAvgScore        float64
	AvgScoreNonCritical    float64
	PerfectScoreCount      int
}

// SummarizeQa aggregates critical-flag rates and score averages.
func SummarizeQa(entries []models.QaEntry) QaMetrics {
	var m QaMetrics
	m.TotalEvaluations = len(entries)
	if m.TotalEvaluations == 0 {
		return m
	}

	var customer, business, compliance, anyCritical, nonCritical int
	var scoreSum, nonCriticalSum float64
	for i := range entries {
		e := &entries[i]
		scoreSum += e.QAScore
		if e.CustomerCritical == 1 {
			customer++
		}
		if e.BusinessCritical == 1 {
			business++
		}
		if e.ComplianceCritical == 1 {
			compliance++
		}
		if e.HasCriticalFlags() {
			anyCritical++
			continue
		}
		nonCritical++
		nonCriticalSum += e.QAScore
		if e.IsPerfectScore() {
			m.PerfectScoreCount++
		}
	}

	total := float64(m.TotalEvaluations)
	m.CustomerCriticalRate = float64(customer) / total
	m.BusinessCriticalRate = float64(business) / total
	m.ComplianceCriticalRate = float64(compliance) / total
	m.AnyCriticalRate = float64(anyCritical) / total
	m.OverallAvgScore = scoreSum / total
	if nonCritical > 0 {
		m.AvgScoreNonCritical = nonCriticalSum / float64(nonCritical)
	}
	return m
}
