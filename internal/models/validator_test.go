package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time { return &t }

func ptrFloat(f float64) *float64 { return &f }

func validUser() User {
	return User{
		ID: 1, FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe",
		FTE: 1.0, Position: "support_agent", StartDate: "2023-01-15",
		Status: UserStatusActive, HourlyRateEUR: 13.5,
	}
}

func TestValidateUser(t *testing.T) {
	v := NewModelValidator()

	u := validUser()
	assert.Empty(t, v.ValidateUser(&u))

	u = validUser()
	u.FTE = 1.5
	assert.NotEmpty(t, v.ValidateUser(&u))

	u = validUser()
	u.Status = "retired"
	assert.NotEmpty(t, v.ValidateUser(&u))
}

func TestValidateTicketClosureRules(t *testing.T) {
	v := NewModelValidator()
	created := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	open := Ticket{
		TicketID: "TKT-00001", Status: TicketStatusOpen, TicketOwner: 1,
		FCR: 0, Escalated: 0, TicketCreated: created,
	}
	assert.Empty(t, v.ValidateTicket(&open))

	closedNoDate := open
	closedNoDate.Status = TicketStatusClosed
	assert.Contains(t, v.ValidateTicket(&closedNoDate), "closed ticket must have a closure date")

	closedBefore := open
	closedBefore.Status = TicketStatusClosed
	closedBefore.TicketClosed = ptrTime(created.Add(-time.Hour))
	assert.Contains(t, v.ValidateTicket(&closedBefore), "ticket closure date cannot be before creation date")

	closedOK := open
	closedOK.Status = TicketStatusClosed
	closedOK.TicketClosed = ptrTime(created.Add(48 * time.Hour))
	assert.Empty(t, v.ValidateTicket(&closedOK))
}

func TestValidateInteractionOrdering(t *testing.T) {
	v := NewModelValidator()
	created := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	in := Interaction{
		InteractionID: "INT-000001", Channel: ChannelEmail, CustomerID: 2,
		InteractionCreated: created, HandleTime: 8, SpeedOfAnswer: 30,
		InteractionHandled: created.Add(8 * time.Minute), HandledBy: 1,
		TicketID: "TKT-00001",
	}
	assert.Empty(t, v.ValidateInteraction(&in))

	in.InteractionHandled = created.Add(-time.Minute)
	assert.NotEmpty(t, v.ValidateInteraction(&in))

	in.InteractionHandled = created.Add(time.Minute)
	in.Channel = "fax"
	assert.NotEmpty(t, v.ValidateInteraction(&in))
}

func TestValidateContactFlagConsistency(t *testing.T) {
	v := NewModelValidator()
	init := time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC)

	answered := Contact{ID: "CAL-INT-000001", Initialized: init, Answered: ptrTime(init.Add(40 * time.Second))}
	assert.Empty(t, v.ValidateContact(&answered))

	abandoned := Contact{ID: "CAL-ABD-000001", Initialized: init, Abandoned: ptrTime(init.Add(90 * time.Second)), IsAbandoned: 1}
	assert.Empty(t, v.ValidateContact(&abandoned))

	bad := Contact{ID: "CAL-ABD-000002", Initialized: init, IsAbandoned: 1}
	assert.NotEmpty(t, v.ValidateContact(&bad))

	both := answered
	both.Abandoned = ptrTime(init.Add(time.Minute))
	assert.NotEmpty(t, v.ValidateContact(&both))
}

func TestValidateWfmEntryAllOrNothing(t *testing.T) {
	v := NewModelValidator()

	working := WfmEntry{
		Date: "2024-03-04", UserID: 1,
		PaidTime: ptrFloat(480), ScheduledTime: ptrFloat(480), AvailableTime: ptrFloat(408),
		InteractionsTime: ptrFloat(326.4), ProductiveTime: ptrFloat(360),
	}
	assert.Empty(t, v.ValidateWfmEntry(&working))
	assert.True(t, working.IsWorkingDay())

	weekend := WfmEntry{Date: "2024-03-09", UserID: 1}
	assert.Empty(t, v.ValidateWfmEntry(&weekend))
	assert.False(t, weekend.IsWorkingDay())

	partial := working
	partial.ProductiveTime = nil
	assert.NotEmpty(t, v.ValidateWfmEntry(&partial))
}

func TestValidateQaEntryCriticalZeroing(t *testing.T) {
	v := NewModelValidator()

	clean := QaEntry{EvalID: "QA-000001", InteractionID: "INT-000001", QAScore: 0.91}
	assert.Empty(t, v.ValidateQaEntry(&clean))

	critical := QaEntry{EvalID: "QA-000002", InteractionID: "INT-000002", QAScore: 0.0, ComplianceCritical: 1}
	assert.Empty(t, v.ValidateQaEntry(&critical))
	assert.True(t, critical.HasCriticalFlags())

	bad := QaEntry{EvalID: "QA-000003", InteractionID: "INT-000003", QAScore: 0.7, CustomerCritical: 1}
	assert.NotEmpty(t, v.ValidateQaEntry(&bad))
}

func TestContactWaitTimeSeconds(t *testing.T) {
	init := time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC)

	abandoned := Contact{Initialized: init, Abandoned: ptrTime(init.Add(75 * time.Second)), IsAbandoned: 1}
	w := abandoned.WaitTimeSeconds()
	if assert.NotNil(t, w) {
		assert.Equal(t, 75.0, *w)
	}

	answered := Contact{Initialized: init, Answered: ptrTime(init.Add(30 * time.Second))}
	assert.Nil(t, answered.WaitTimeSeconds())
}
