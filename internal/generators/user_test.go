package generators

import (
	"math/rand"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PSavvateev/cs-data-generator/internal/config"
)

// testConfig returns the default configuration scaled down to sizes the
// generator tests can run quickly.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.NumTickets = 200
	cfg.UniqueCustomers = 50
	cfg.UniqueAgents = 4
	cfg.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.EndDate = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	return cfg
}

func TestUserGeneratorStaffing(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(42))
	faker := gofakeit.New(42)

	users, violations := NewUserGenerator(cfg, rng, faker).Generate()
	require.Len(t, users, cfg.UniqueAgents)
	assert.Empty(t, violations)

	// The first two agents are part-time, everyone after is full-time.
	assert.Equal(t, 0.75, users[0].FTE)
	assert.Equal(t, 0.75, users[1].FTE)
	for _, u := range users[2:] {
		assert.Equal(t, 1.0, u.FTE)
	}
}

func TestUserGeneratorThreeAgentStaffing(t *testing.T) {
	cfg := testConfig()
	cfg.UniqueAgents = 3

	users, _ := NewUserGenerator(cfg, rand.New(rand.NewSource(42)), gofakeit.New(42)).Generate()
	require.Len(t, users, 3)
	assert.Equal(t, 0.75, users[0].FTE)
	assert.Equal(t, 0.75, users[1].FTE)
	assert.Equal(t, 1.0, users[2].FTE)
}

func TestUserGeneratorFields(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(42))
	faker := gofakeit.New(42)

	users, _ := NewUserGenerator(cfg, rng, faker).Generate()

	for i, u := range users {
		assert.Equal(t, i+1, u.ID)
		assert.NotEmpty(t, u.FullName)
		assert.NotEmpty(t, u.FirstName)
		assert.Equal(t, "support_agent", u.Position)
		assert.Equal(t, "active", u.Status)

		start, err := time.Parse("2006-01-02", u.StartDate)
		require.NoError(t, err)
		assert.False(t, start.Before(agentHiredAfter))
		assert.True(t, start.Before(agentHiredBefore))

		assert.GreaterOrEqual(t, u.HourlyRateEUR, 12.0)
		assert.LessOrEqual(t, u.HourlyRateEUR, 16.0)
	}
}

func TestUserGeneratorDeterministic(t *testing.T) {
	cfg := testConfig()

	a, _ := NewUserGenerator(cfg, rand.New(rand.NewSource(42)), gofakeit.New(42)).Generate()
	b, _ := NewUserGenerator(cfg, rand.New(rand.NewSource(42)), gofakeit.New(42)).Generate()
	assert.Equal(t, a, b)
}
