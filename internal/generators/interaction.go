package generators

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// InteractionGenerator produces the interaction table from the tickets.
type InteractionGenerator struct {
	cfg       *config.Config
	rng       *rand.Rand
	validator *models.ModelValidator
}

// NewInteractionGenerator returns an interaction generator drawing from rng.
func NewInteractionGenerator(cfg *config.Config, rng *rand.Rand) *InteractionGenerator {
	return &InteractionGenerator{
		cfg:       cfg,
		rng:       rng,
		validator: models.NewModelValidator(),
	}
}

// Generate produces the contacts for every ticket: exactly one for FCR
// tickets, otherwise a count from the symptom's contacts-per-case
// distribution. Interaction times land inside the ticket's allowed span with
// the daily bimodal peak pattern applied. The interaction's customer and
// handler are uniform draws over the full id ranges, independent of the
// ticket's own owner and customer.
func (g *InteractionGenerator) Generate(tickets []models.Ticket, userCount, customerCount int) ([]models.Interaction, []string) {
	var interactions []models.Interaction
	var violations []string
	seq := 1

	for ti := range tickets {
		ticket := &tickets[ti]
		n := g.contactsPerCase(ticket.SymptomCat, ticket.FCR)

		created := ticket.TicketCreated
		if created.IsZero() {
			created = sampling.RandomDate(g.rng, g.cfg.StartDate, g.cfg.EndDate)
		}

		latestAllowed := created.Add(time.Duration(g.cfg.MaxInteractionSpanHours) * time.Hour)
		if latestAllowed.After(g.cfg.EndDate) {
			latestAllowed = g.cfg.EndDate
		}

		for i := 0; i < n; i++ {
			interactionID := fmt.Sprintf("INT-%06d", seq)
			seq++

			customerID := g.rng.Intn(customerCount) + 1
			handledBy := g.rng.Intn(userCount) + 1

			var interactionCreated time.Time
			if !created.Before(latestAllowed) {
				interactionCreated = created
			} else {
				window := int64(latestAllowed.Sub(created).Seconds())
				offset := g.rng.Int63n(window + 1)
				interactionCreated = created.Add(time.Duration(offset) * time.Second)
				interactionCreated = sampling.DailyTimeOfDay(g.rng, interactionCreated,
					g.cfg.Peaks, g.cfg.Active.Start, g.cfg.Active.End)
			}

			modifier, ok := g.cfg.HandleTimeModifiers[ticket.SymptomCat]
			if !ok {
				modifier = 1.0
			}
			handleTime := sampling.ValueWithAverage(g.rng, g.cfg.HandleTime[ticket.Origin], modifier)
			speedAnswer := sampling.ValueWithAverage(g.rng, g.cfg.SpeedAnswer[ticket.Origin], 1.0)

			interaction := models.Interaction{
				InteractionID:      interactionID,
				Channel:            ticket.Origin,
				CustomerID:         customerID,
				InteractionCreated: interactionCreated,
				HandleTime:         handleTime,
				SpeedOfAnswer:      speedAnswer,
				InteractionHandled: interactionCreated.Add(time.Duration(handleTime * float64(time.Minute))),
				HandledBy:          handledBy,
				Subject:            "",
				Body:               "",
				TicketID:           ticket.TicketID,
			}

			for _, msg := range g.validator.ValidateInteraction(&interaction) {
				violations = append(violations, "interaction "+interactionID+": "+msg)
			}
			interactions = append(interactions, interaction)
		}
	}

	return interactions, violations
}

// contactsPerCase returns 1 for FCR tickets. Otherwise it samples the
// symptom's CPC distribution, rounds to an int, and clamps into the
// configured [min, max].
func (g *InteractionGenerator) contactsPerCase(symptomCat string, fcr int) int {
	if fcr == 1 {
		return 1
	}
	p := g.cfg.SymptomCPC[symptomCat]
	n := int(math.Round(g.rng.NormFloat64()*p.Std + p.Mean))
	if n < p.Min {
		n = p.Min
	}
	if n > p.Max {
		n = p.Max
	}
	return n
}

// ChannelStats aggregates interaction counts and averages per channel.
type ChannelStats struct {
	Total            int
	AvgHandleTime    float64
	AvgSpeedOfAnswer float64
}

// ChannelPerformance returns per-channel totals and averages.
func ChannelPerformance(interactions []models.Interaction) map[string]ChannelStats {
	sums := make(map[string]*ChannelStats)
	for i := range interactions {
		s, ok := sums[interactions[i].Channel]
		if !ok {
			s = &ChannelStats{}
			sums[interactions[i].Channel] = s
		}
		s.Total++
		s.AvgHandleTime += interactions[i].HandleTime
		s.AvgSpeedOfAnswer += interactions[i].SpeedOfAnswer
	}
	out := make(map[string]ChannelStats, len(sums))
	for ch, s := range sums {
		out[ch] = ChannelStats{
			Total:            s.Total,
			AvgHandleTime:    s.AvgHandleTime / float64(s.Total),
			AvgSpeedOfAnswer: s.AvgSpeedOfAnswer / float64(s.Total),
		}
	}
	return out
}
