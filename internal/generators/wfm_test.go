package generators

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PSavvateev/cs-data-generator/internal/models"
)

func wfmUsers() []models.User {
	return []models.User{
		{ID: 1, FullName: "Part Timer", FTE: 0.75, StartDate: "2023-06-01", Status: "active"},
		{ID: 2, FullName: "Full Timer", FTE: 1.0, StartDate: "2024-02-01", Status: "active"},
	}
}

func TestWfmGeneratorAllOrNothing(t *testing.T) {
	cfg := testConfig()
	entries, violations := NewWfmGenerator(cfg, rand.New(rand.NewSource(42))).Generate(wfmUsers())
	assert.Empty(t, violations)
	require.NotEmpty(t, entries)

	for i := range entries {
		e := &entries[i]
		d, err := time.Parse("2006-01-02", e.Date)
		require.NoError(t, err)

		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			assert.False(t, e.IsWorkingDay(), "weekend row %s user %d has time fields", e.Date, e.UserID)
			assert.Nil(t, e.ScheduledTime)
		default:
			require.True(t, e.IsWorkingDay(), "weekday row %s user %d missing time fields", e.Date, e.UserID)
			require.NotNil(t, e.ScheduledTime)
			require.NotNil(t, e.AvailableTime)
			require.NotNil(t, e.InteractionsTime)
			require.NotNil(t, e.ProductiveTime)
		}
	}
}

func TestWfmGeneratorScheduledFromFTE(t *testing.T) {
	cfg := testConfig()
	entries, _ := NewWfmGenerator(cfg, rand.New(rand.NewSource(42))).Generate(wfmUsers())

	for i := range entries {
		e := &entries[i]
		if !e.IsWorkingDay() {
			continue
		}
		want := 480.0
		if e.UserID == 1 {
			want = 360.0 // 0.75 FTE
		}
		assert.Equal(t, want, *e.ScheduledTime, "row %s user %d", e.Date, e.UserID)
		assert.Equal(t, want, *e.PaidTime)

		// Derived times respect the factor ordering.
		assert.LessOrEqual(t, *e.AvailableTime, *e.ScheduledTime)
		assert.LessOrEqual(t, *e.InteractionsTime, *e.AvailableTime)
		assert.LessOrEqual(t, *e.ProductiveTime, *e.ScheduledTime)
		assert.Greater(t, *e.AvailableTime, 0.0)
	}
}

func TestWfmGeneratorHonorsUserStartDate(t *testing.T) {
	cfg := testConfig()
	entries, _ := NewWfmGenerator(cfg, rand.New(rand.NewSource(42))).Generate(wfmUsers())

	// User 2 started 2024-02-01, after the config start date: no earlier rows.
	for i := range entries {
		e := &entries[i]
		if e.UserID != 2 {
			continue
		}
		assert.GreaterOrEqual(t, e.Date, "2024-02-01")
	}
}

func TestUtilizationByUser(t *testing.T) {
	cfg := testConfig()
	entries, _ := NewWfmGenerator(cfg, rand.New(rand.NewSource(42))).Generate(wfmUsers())

	stats := UtilizationByUser(entries)
	require.Len(t, stats, 2)
	for id, s := range stats {
		assert.Greater(t, s.WorkingDays, 0, "user %d", id)
		assert.Greater(t, s.AvgScheduledPerDay, 0.0)
		assert.LessOrEqual(t, s.AvgAvailablePerDay, s.AvgScheduledPerDay)
	}
}
