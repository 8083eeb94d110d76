// Package pipeline drives the generators in their fixed dependency order and
// checks cross-table integrity over the finished dataset.
package pipeline

import (
	"fmt"
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/generators"
	"github.com/PSavvateev/cs-data-generator/internal/models"
)

// Dataset is the complete generated table collection.
type Dataset struct {
	Users        []models.User
	Customers    []models.Customer
	Tickets      []models.Ticket
	Interactions []models.Interaction
	Calls        []models.Contact
	Chats        []models.Contact
	WFM          []models.WfmEntry
	QA           []models.QaEntry
}

// maxLoggedViolations caps how many soft-validation messages each stage logs
// in full; the rest are summarized as a count.
const maxLoggedViolations = 5

// Orchestrator runs the full generation pipeline. All randomness comes from
// one seeded source plus one seeded faker, created per run, so a given
// configuration always produces the same dataset. Generation is
// single-threaded; stage order must not change, because every draw shifts
// the sequence seen by later stages.
type Orchestrator struct {
	cfg *config.Config
	log zerolog.Logger
}

// New returns an orchestrator for cfg.
func New(cfg *config.Config, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, log: log}
}

// Generate runs every stage in dependency order: users and customers first,
// tickets from those, interactions from tickets, then closure
// reconciliation, calls, chats, WFM and QA. The returned dataset is complete
// and internally ordered; soft validation issues are logged, not fatal.
func (o *Orchestrator) Generate() (*Dataset, error) {
	rng := rand.New(rand.NewSource(o.cfg.RandomSeed))
	faker := gofakeit.New(o.cfg.RandomSeed)

	ds := &Dataset{}

	o.log.Info().Msg("generating users")
	var violations []string
	ds.Users, violations = generators.NewUserGenerator(o.cfg, rng, faker).Generate()
	o.logStage("users", len(ds.Users), violations)

	o.log.Info().Msg("generating customers")
	ds.Customers, violations = generators.NewCustomerGenerator(o.cfg, rng, faker).Generate()
	o.logStage("customers", len(ds.Customers), violations)

	o.log.Info().Msg("generating tickets")
	var err error
	ds.Tickets, violations, err = generators.NewTicketGenerator(o.cfg, rng).Generate(ds.Users, ds.Customers)
	if err != nil {
		return nil, fmt.Errorf("ticket generation failed: %w", err)
	}
	o.logStage("tickets", len(ds.Tickets), violations)

	o.log.Info().Msg("generating interactions")
	ds.Interactions, violations = generators.NewInteractionGenerator(o.cfg, rng).
		Generate(ds.Tickets, len(ds.Users), len(ds.Customers))
	o.logStage("interactions", len(ds.Interactions), violations)

	o.log.Info().Msg("reconciling ticket closure times")
	ds.Tickets = generators.ReconcileClosureTimes(ds.Tickets, ds.Interactions, rng, o.cfg)

	o.log.Info().Msg("generating calls")
	ds.Calls, violations = generators.NewCallGenerator(o.cfg, rng).Generate(ds.Interactions)
	o.logStage("calls", len(ds.Calls), violations)

	o.log.Info().Msg("generating chats")
	ds.Chats, violations = generators.NewChatGenerator(o.cfg, rng).Generate(ds.Interactions)
	o.logStage("chats", len(ds.Chats), violations)

	o.log.Info().Msg("generating wfm entries")
	ds.WFM, violations = generators.NewWfmGenerator(o.cfg, rng).Generate(ds.Users)
	o.logStage("wfm", len(ds.WFM), violations)

	o.log.Info().Msg("generating qa evaluations")
	ds.QA, violations = generators.NewQaGenerator(o.cfg, rng).Generate(ds.Interactions)
	if len(ds.QA) == 0 {
		o.log.Warn().Msg("no qa evaluations generated: sample size too small for interaction count")
	}
	o.logStage("qa", len(ds.QA), violations)

	return ds, nil
}

// logStage reports the stage row count and the first few soft violations.
func (o *Orchestrator) logStage(table string, rows int, violations []string) {
	o.log.Info().Str("table", table).Int("rows", rows).Msg("table generated")
	if len(violations) == 0 {
		return
	}
	o.log.Warn().Str("table", table).Int("violations", len(violations)).Msg("soft validation issues")
	for i, v := range violations {
		if i == maxLoggedViolations {
			o.log.Warn().Msgf("... and %d more", len(violations)-maxLoggedViolations)
			break
		}
		o.log.Warn().Msg(v)
	}
}
