package generators

import (
	"math/rand"
	"time"

	"github.com/rickar/cal/v2"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// WfmGenerator produces one workforce-management row per agent per calendar
// day. Working days are decided by a business calendar (Mon-Fri with no
// holidays configured by default).
type WfmGenerator struct {
	cfg       *config.Config
	rng       *rand.Rand
	calendar  *cal.BusinessCalendar
	validator *models.ModelValidator
}

// NewWfmGenerator returns a WFM generator drawing from rng.
func NewWfmGenerator(cfg *config.Config, rng *rand.Rand) *WfmGenerator {
	return &WfmGenerator{
		cfg:       cfg,
		rng:       rng,
		calendar:  cal.NewBusinessCalendar(),
		validator: models.NewModelValidator(),
	}
}

// Generate produces rows for every user from max(config start, user start)
// through the config end date. Working-day rows get scheduled minutes from
// the agent's FTE and three independently sampled factors; weekend rows
// leave every time field nil.
func (g *WfmGenerator) Generate(users []models.User) ([]models.WfmEntry, []string) {
	var entries []models.WfmEntry
	var violations []string

	for ui := range users {
		user := &users[ui]

		start := g.cfg.StartDate
		if userStart, err := time.ParseInLocation("2006-01-02", user.StartDate, time.UTC); err == nil && userStart.After(start) {
			start = userStart
		}

		for d := start; !d.After(g.cfg.EndDate); d = d.AddDate(0, 0, 1) {
			entry := models.WfmEntry{
				Date:   d.Format("2006-01-02"),
				UserID: user.ID,
			}

			if g.calendar.IsWorkday(d) {
				scheduled := user.FTE * 8 * 60

				shrinkage := g.factor("shrinkage")
				occupancy := g.factor("occupancy")
				utilization := g.factor("utilization")

				paid := scheduled
				available := scheduled * shrinkage
				interactionsTime := available * occupancy
				productive := scheduled * utilization

				entry.PaidTime = &paid
				entry.ScheduledTime = &scheduled
				entry.AvailableTime = &available
				entry.InteractionsTime = &interactionsTime
				entry.ProductiveTime = &productive
			}

			for _, msg := range g.validator.ValidateWfmEntry(&entry) {
				violations = append(violations, "wfm "+entry.Date+" user "+user.FullName+": "+msg)
			}
			entries = append(entries, entry)
		}
	}

	return entries, violations
}

// factor samples one WFM factor as Normal(mean, deviation/3) clamped into
// [0.1, 1.0].
func (g *WfmGenerator) factor(name string) float64 {
	p := g.cfg.WFM.Factors[name]
	f := g.rng.NormFloat64()*(p.Deviation/3) + p.Mean
	return sampling.Clamp(f, 0.1, 1.0)
}

// UtilizationStats holds per-user working-day time totals and averages.
type UtilizationStats struct {
	WorkingDays        int
	TotalScheduled     float64
	TotalAvailable     float64
	TotalInteractions  float64
	TotalProductive    float64
	AvgScheduledPerDay float64
	AvgAvailablePerDay float64
}

// UtilizationByUser aggregates working-day WFM rows per user id.
func UtilizationByUser(entries []models.WfmEntry) map[int]UtilizationStats {
	agg := make(map[int]*UtilizationStats)
	for i := range entries {
		e := &entries[i]
		if !e.IsWorkingDay() {
			continue
		}
		s, ok := agg[e.UserID]
		if !ok {
			s = &UtilizationStats{}
			agg[e.UserID] = s
		}
		s.WorkingDays++
		s.TotalScheduled += *e.ScheduledTime
		s.TotalAvailable += *e.AvailableTime
		s.TotalInteractions += *e.InteractionsTime
		s.TotalProductive += *e.ProductiveTime
	}
	out := make(map[int]UtilizationStats, len(agg))
	for id, s := range agg {
		if s.WorkingDays > 0 {
			s.AvgScheduledPerDay = s.TotalScheduled / float64(s.WorkingDays)
			s.AvgAvailablePerDay = s.TotalAvailable / float64(s.WorkingDays)
		}
		out[id] = *s
	}
	return out
}
