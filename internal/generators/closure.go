package generators

import (
	"math/rand"
	"time"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// ReconcileClosureTimes recomputes closure timestamps for closed tickets from
// their generated interactions and returns a new ticket slice; the input is
// not mutated. For each closed ticket the last interaction-handled time (or
// the creation time when there are no interactions) is combined with a
// symptom-specific resolution-time draw according to the configured anchor
// mode. A closure landing before creation is forced to creation plus at
// least one hour. Lifecycle metrics are recorded on the returned rows.
func ReconcileClosureTimes(tickets []models.Ticket, interactions []models.Interaction, rng *rand.Rand, cfg *config.Config) []models.Ticket {
	byTicket := make(map[string][]*models.Interaction, len(tickets))
	for i := range interactions {
		byTicket[interactions[i].TicketID] = append(byTicket[interactions[i].TicketID], &interactions[i])
	}

	out := make([]models.Ticket, len(tickets))
	copy(out, tickets)

	for i := range out {
		t := &out[i]
		if !t.IsClosed() {
			continue
		}

		var last time.Time
		for _, in := range byTicket[t.TicketID] {
			if in.InteractionHandled.After(last) {
				last = in.InteractionHandled
			}
		}
		if last.IsZero() {
			last = t.TicketCreated
		}

		resolutionHours := resolutionTime(rng, t.SymptomCat, cfg.SymptomResolution)

		var closed time.Time
		switch cfg.AnchorClosureTo {
		case config.AnchorFromCreation:
			closed = addHours(t.TicketCreated, resolutionHours)
		case config.AnchorLastInteraction:
			closed = addHours(last, resolutionHours)
		default:
			// Unrecognized anchor mode falls back to last-interaction.
			closed = addHours(last, resolutionHours)
		}

		if closed.Before(t.TicketCreated) {
			safety := resolutionHours
			if safety < 1 {
				safety = 1
			}
			closed = addHours(t.TicketCreated, safety)
		}

		lifecycle := closed.Sub(t.TicketCreated).Hours()

		lastCopy := last
		resCopy := resolutionHours
		lifeCopy := lifecycle
		t.TicketClosed = &closed
		t.LastInteractionTime = &lastCopy
		t.ResolutionAfterLastInteractionHours = &resCopy
		t.LifecycleHours = &lifeCopy
	}

	return out
}

// resolutionTime samples the hours from last contact to closure for a
// symptom category: a truncated normal whose spread is at least a sixth of
// the configured range, rounded to half-hour buckets.
func resolutionTime(rng *rand.Rand, symptomCat string, params map[string]config.ResolutionParams) float64 {
	p := params[symptomCat]
	std := p.Std
	if spread := (p.Max - p.Min) / 6; spread > std {
		std = spread
	}
	val := rng.NormFloat64()*std + p.Mean
	val = sampling.Clamp(val, p.Min, p.Max)
	return sampling.RoundHalf(val)
}

func addHours(t time.Time, hours float64) time.Time {
	return t.Add(time.Duration(hours * float64(time.Hour)))
}
