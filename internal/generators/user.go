// Package generators derives each dataset table from configured
// distributions and previously generated tables. Generators draw from one
// shared *rand.Rand owned by the orchestrator; invocation order is fixed, so
// a given seed always yields the same tables.
package generators

import (
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/sampling"
)

// Agent hiring window and the reference date tenure is measured against.
var (
	agentHiredAfter  = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	agentHiredBefore = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	rateReferenceNow = time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)
)

// UserGenerator produces the support-agent table.
type UserGenerator struct {
	cfg       *config.Config
	rng       *rand.Rand
	faker     *gofakeit.Faker
	validator *models.ModelValidator
}

// NewUserGenerator returns a user generator drawing from rng and faker.
func NewUserGenerator(cfg *config.Config, rng *rand.Rand, faker *gofakeit.Faker) *UserGenerator {
	return &UserGenerator{
		cfg:       cfg,
		rng:       rng,
		faker:     faker,
		validator: models.NewModelValidator(),
	}
}

// Generate produces cfg.UniqueAgents agents with sequential ids. The first
// two agents are part-time (FTE 0.75), the rest full-time; this is an
// index-based staffing rule, not a random draw. Returned violations are
// soft: the rows are kept regardless.
func (g *UserGenerator) Generate() ([]models.User, []string) {
	users := make([]models.User, 0, g.cfg.UniqueAgents)
	var violations []string

	for i := 0; i < g.cfg.UniqueAgents; i++ {
		fullName := g.faker.Name()
		firstName, lastName, _ := strings.Cut(fullName, " ")

		fte := 1.0
		if i < 2 {
			fte = 0.75
		}

		startDate := sampling.RandomDateOnly(g.rng, agentHiredAfter, agentHiredBefore)

		user := models.User{
			ID:            i + 1,
			FullName:      fullName,
			FirstName:     firstName,
			LastName:      lastName,
			FTE:           fte,
			Position:      "support_agent",
			StartDate:     startDate.Format("2006-01-02"),
			Status:        models.UserStatusActive,
			HourlyRateEUR: g.hourlyRate(startDate),
		}

		for _, msg := range g.validator.ValidateUser(&user) {
			violations = append(violations, "user "+user.FullName+": "+msg)
		}
		users = append(users, user)
	}

	return users, violations
}

// hourlyRate derives the agent's rate from tenure: a uniform 12-14 EUR base
// plus 0.50 EUR per year of experience capped at 2 EUR, never above 16 EUR.
func (g *UserGenerator) hourlyRate(startDate time.Time) float64 {
	years := rateReferenceNow.Sub(startDate).Hours() / 24 / 365.25

	base := 12 + g.rng.Float64()*2
	bonus := years * 0.5
	if bonus > 2 {
		bonus = 2
	}

	rate := base + bonus
	if rate > 16 {
		rate = 16
	}
	return sampling.Round2(rate)
}
