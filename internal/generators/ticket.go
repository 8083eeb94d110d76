package generators

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// TicketGenerator produces the ticket table from the user and customer
// tables.
type TicketGenerator struct {
	cfg       *config.Config
	rng       *rand.Rand
	validator *models.ModelValidator
}

// NewTicketGenerator returns a ticket generator drawing from rng.
func NewTicketGenerator(cfg *config.Config, rng *rand.Rand) *TicketGenerator {
	return &TicketGenerator{
		cfg:       cfg,
		rng:       rng,
		validator: models.NewModelValidator(),
	}
}

// Generate produces cfg.NumTickets tickets. Owner and customer are uniform
// draws over the generated id ranges; the customer draw only feeds the
// country-to-language derivation and is not stored on the row. Closed
// tickets get a provisional closure date that the closure reconciliation
// pass later overwrites.
func (g *TicketGenerator) Generate(users []models.User, customers []models.Customer) ([]models.Ticket, []string, error) {
	tickets := make([]models.Ticket, 0, g.cfg.NumTickets)
	var violations []string

	for i := 0; i < g.cfg.NumTickets; i++ {
		ticketID := fmt.Sprintf("TKT-%05d", i+1)
		owner := g.rng.Intn(len(users)) + 1
		customerID := g.rng.Intn(len(customers)) + 1

		origin := sampling.WeightedChoice(g.rng, g.cfg.Channels)
		product := sampling.WeightedChoice(g.rng, g.cfg.Products)
		status := sampling.WeightedChoice(g.rng, g.cfg.Statuses)

		country := customers[customerID-1].Country
		language, ok := g.cfg.CountryLanguage[country]
		if !ok {
			return nil, violations, fmt.Errorf("ticket %s: no language mapping for country %q", ticketID, country)
		}

		symptomCat, symptom := sampling.WeightedTaxonomyChoice(g.rng, g.cfg.Symptoms)

		fcr := g.sampleFCR(symptomCat)
		escalated := 0
		if fcr == 0 && g.rng.Float64() < g.cfg.EscalationRate {
			escalated = 1
		}

		created := sampling.RandomDate(g.rng, g.cfg.StartDate, g.cfg.EndDate)
		var closed *time.Time
		if status == models.TicketStatusClosed {
			c := created.AddDate(0, 0, g.rng.Intn(11))
			closed = &c
		}

		ticket := models.Ticket{
			TicketID:      ticketID,
			Origin:        origin,
			SymptomCat:    symptomCat,
			Symptom:       symptom,
			Status:        status,
			Product:       product,
			TicketOwner:   owner,
			Language:      language,
			FCR:           fcr,
			Escalated:     escalated,
			TicketCreated: created,
			TicketClosed:  closed,
		}

		for _, msg := range g.validator.ValidateTicket(&ticket) {
			violations = append(violations, "ticket "+ticketID+": "+msg)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, violations, nil
}

// sampleFCR draws the first-contact-resolution flag for a symptom category:
// the category's rate is itself sampled from Normal(mean, deviation/3),
// clamped to [0,1], then the flag is a Bernoulli draw at that rate.
func (g *TicketGenerator) sampleFCR(symptomCat string) int {
	p := g.cfg.SymptomFCR[symptomCat]
	rate := g.rng.NormFloat64()*(p.Deviation/3) + p.Mean
	rate = sampling.Clamp(rate, 0, 1)
	if g.rng.Float64() < rate {
		return 1
	}
	return 0
}

// FCRRatesBySymptom returns the achieved FCR share per symptom category.
func FCRRatesBySymptom(tickets []models.Ticket) map[string]float64 {
	totals := make(map[string]int)
	hits := make(map[string]int)
	for i := range tickets {
		totals[tickets[i].SymptomCat]++
		if tickets[i].IsFCR() {
			hits[tickets[i].SymptomCat]++
		}
	}
	rates := make(map[string]float64, len(totals))
	for cat, n := range totals {
		rates[cat] = float64(hits[cat]) / float64(n)
	}
	return rates
}
