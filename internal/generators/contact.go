package generators

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// ContactGenerator derives a call or chat table from the interactions of one
// channel. Answered sessions map 1:1 to interactions; abandoned sessions are
// synthetic extra rows tied to no interaction or ticket.
type ContactGenerator struct {
	cfg       *config.Config
	rng       *rand.Rand
	table     string // "calls" or "chats"
	channel   string // interaction channel feeding this table
	params    config.AbandonedParams
	validator *models.ModelValidator
}

// NewCallGenerator returns the generator for the calls table (phone
// interactions).
func NewCallGenerator(cfg *config.Config, rng *rand.Rand) *ContactGenerator {
	return &ContactGenerator{
		cfg:       cfg,
		rng:       rng,
		table:     "calls",
		channel:   models.ChannelPhone,
		params:    cfg.Abandoned["calls"],
		validator: models.NewModelValidator(),
	}
}

// NewChatGenerator returns the generator for the chats table (chat
// interactions).
func NewChatGenerator(cfg *config.Config, rng *rand.Rand) *ContactGenerator {
	return &ContactGenerator{
		cfg:       cfg,
		rng:       rng,
		table:     "chats",
		channel:   models.ChannelChat,
		params:    cfg.Abandoned["chats"],
		validator: models.NewModelValidator(),
	}
}

// Generate produces one answered session per matching interaction plus
// floor(N × rate) abandoned sessions, where the rate is a single clamped
// normal draw per table.
func (g *ContactGenerator) Generate(interactions []models.Interaction) ([]models.Contact, []string) {
	matching := make([]*models.Interaction, 0, len(interactions))
	for i := range interactions {
		if interactions[i].Channel == g.channel {
			matching = append(matching, &interactions[i])
		}
	}

	var contacts []models.Contact
	var violations []string
	prefix := strings.ToUpper(g.table[:3])

	rate := g.rng.NormFloat64()*g.params.SD + g.params.Avg
	rate = sampling.Clamp(rate, g.params.Low, g.params.High)

	for _, in := range matching {
		initialized := sampling.DailyTimeOfDay(g.rng, in.InteractionCreated,
			g.cfg.Peaks, g.cfg.Active.Start, g.cfg.Active.End)
		answered := initialized.Add(time.Duration(in.SpeedOfAnswer * float64(time.Second)))

		contact := models.Contact{
			ID:          prefix + "-" + in.InteractionID,
			Initialized: initialized,
			Answered:    &answered,
			IsAbandoned: 0,
		}
		for _, msg := range g.validator.ValidateContact(&contact) {
			violations = append(violations, g.table+" "+contact.ID+": "+msg)
		}
		contacts = append(contacts, contact)
	}

	numAbandoned := int(math.Floor(float64(len(matching)) * rate))
	for i := 0; i < numAbandoned; i++ {
		base := sampling.RandomDate(g.rng, g.cfg.StartDate, g.cfg.EndDate)
		initialized := sampling.DailyTimeOfDay(g.rng, base,
			g.cfg.Peaks, g.cfg.Active.Start, g.cfg.Active.End)

		wait := int(sampling.TruncatedNormal(g.rng,
			g.cfg.AbandonedWait.Avg,
			(g.cfg.AbandonedWait.High-g.cfg.AbandonedWait.Low)/6,
			g.cfg.AbandonedWait.Low,
			g.cfg.AbandonedWait.High))
		abandoned := initialized.Add(time.Duration(wait) * time.Second)

		contact := models.Contact{
			ID:          fmt.Sprintf("%s-ABD-%06d", prefix, i+1),
			Initialized: initialized,
			Abandoned:   &abandoned,
			IsAbandoned: 1,
		}
		for _, msg := range g.validator.ValidateContact(&contact) {
			violations = append(violations, g.table+" "+contact.ID+": "+msg)
		}
		contacts = append(contacts, contact)
	}

	return contacts, violations
}

// AbandonmentStats summarizes one contact table.
type AbandonmentStats struct {
	Total               int
	Answered            int
	Abandoned           int
	AbandonmentRate     float64
	AvgAbandonedWaitSec float64
}

// Abandonment returns totals, the abandonment share, and the average
// abandoned wait time for a contact table.
func Abandonment(contacts []models.Contact) AbandonmentStats {
	stats := AbandonmentStats{Total: len(contacts)}
	var waitSum float64
	for i := range contacts {
		if contacts[i].WasAbandoned() {
			stats.Abandoned++
			if w := contacts[i].WaitTimeSeconds(); w != nil {
				waitSum += *w
			}
		}
	}
	stats.Answered = stats.Total - stats.Abandoned
	if stats.Total > 0 {
		stats.AbandonmentRate = float64(stats.Abandoned) / float64(stats.Total)
	}
	if stats.Abandoned > 0 {
		stats.AvgAbandonedWaitSec = waitSum / float64(stats.Abandoned)
	}
	return stats
}
