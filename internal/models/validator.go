package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ModelValidator runs entity-local business-rule checks. Violations come back
// as message strings and never abort generation; callers decide severity.
type ModelValidator struct {
	v *validator.Validate
}

// NewModelValidator returns a validator ready for all entity types.
func NewModelValidator() *ModelValidator {
	return &ModelValidator{v: validator.New()}
}

// tagViolations flattens validator.ValidationErrors into readable messages.
func (m *ModelValidator) tagViolations(entity any) []string {
	err := m.v.Struct(entity)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("invalid %s: %v, must be one of [%s]",
				e.Field(), e.Value(), e.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("invalid %s: %v, must be >= %s",
				e.Field(), e.Value(), e.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("invalid %s: %v, must be <= %s",
				e.Field(), e.Value(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("invalid %s: %v (%s)",
				e.Field(), e.Value(), e.Tag()))
		}
	}
	return msgs
}

// ValidateUser checks FTE range, rate sign and status membership.
func (m *ModelValidator) ValidateUser(u *User) []string {
	return m.tagViolations(u)
}

// ValidateCustomer checks id validity.
func (m *ModelValidator) ValidateCustomer(c *Customer) []string {
	return m.tagViolations(c)
}

// ValidateTicket checks flag domains, status membership, and closure
// ordering: a closed ticket must carry a closure date, and a closure date
// must not precede creation.
func (m *ModelValidator) ValidateTicket(t *Ticket) []string {
	msgs := m.tagViolations(t)
	if t.IsClosed() && t.TicketClosed == nil {
		msgs = append(msgs, "closed ticket must have a closure date")
	}
	if t.TicketClosed != nil && t.TicketClosed.Before(t.TicketCreated) {
		msgs = append(msgs, "ticket closure date cannot be before creation date")
	}
	return msgs
}

// ValidateInteraction checks value signs, channel membership and temporal
// ordering of creation vs handling.
func (m *ModelValidator) ValidateInteraction(i *Interaction) []string {
	msgs := m.tagViolations(i)
	if i.InteractionHandled.Before(i.InteractionCreated) {
		msgs = append(msgs, "interaction handled time cannot be before creation time")
	}
	return msgs
}

// ValidateContact checks that answered/abandoned timestamps agree with the
// abandonment flag.
func (m *ModelValidator) ValidateContact(c *Contact) []string {
	msgs := m.tagViolations(c)
	if c.WasAbandoned() {
		if c.Abandoned == nil {
			msgs = append(msgs, "abandoned session must have an abandonment time")
		}
		if c.Answered != nil {
			msgs = append(msgs, "abandoned session cannot have an answered time")
		}
	} else {
		if c.Answered == nil {
			msgs = append(msgs, "answered session must have an answered time")
		}
		if c.Abandoned != nil {
			msgs = append(msgs, "answered session cannot have an abandonment time")
		}
	}
	return msgs
}

// ValidateWfmEntry checks the all-or-nothing population rule: working-day
// rows carry all five time fields, non-working-day rows carry none.
func (m *ModelValidator) ValidateWfmEntry(w *WfmEntry) []string {
	msgs := m.tagViolations(w)
	fields := []*float64{w.PaidTime, w.ScheduledTime, w.AvailableTime, w.InteractionsTime, w.ProductiveTime}
	var set int
	for _, f := range fields {
		if f != nil {
			set++
		}
	}
	if set != 0 && set != len(fields) {
		msgs = append(msgs, fmt.Sprintf("wfm entry must have all or none of its time fields set, got %d of %d", set, len(fields)))
	}
	return msgs
}

// ValidateQaEntry checks score bounds and the critical-flag zeroing rule.
func (m *ModelValidator) ValidateQaEntry(q *QaEntry) []string {
	msgs := m.tagViolations(q)
	if q.HasCriticalFlags() && q.QAScore != 0.0 {
		msgs = append(msgs, fmt.Sprintf("qa entry with critical flags must score 0.0, got %v", q.QAScore))
	}
	return msgs
}
