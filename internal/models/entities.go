// Package models defines the generated dataset entities and their
// business-rule validation.
package models

import "time"

// User statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Ticket statuses.
const (
	TicketStatusNew    = "new"
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

// Contact channels.
const (
	ChannelEmail = "email"
	ChannelPhone = "phone"
	ChannelChat  = "chat"
)

// User is a support agent row.
type User struct {
	ID            int     `json:"id" validate:"gte=1"`
	FullName      string  `json:"full_name"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	FTE           float64 `json:"fte" validate:"gte=0,lte=1"`
	Position      string  `json:"position"`
	StartDate     string  `json:"start_date"` // YYYY-MM-DD
	Status        string  `json:"status" validate:"oneof=active inactive"`
	HourlyRateEUR float64 `json:"hourly_rate_eur" validate:"gte=0"`
}

// IsPartTime reports whether the agent works less than full time.
func (u *User) IsPartTime() bool {
	return u.FTE < 1.0
}

// Customer is a customer row with synthetic PII.
type Customer struct {
	ID      int    `json:"customer_id" validate:"gte=1"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

// Ticket is a support case. Closure-related fields are nil until the ticket
// is closed; LastInteractionTime, ResolutionAfterLastInteractionHours and
// LifecycleHours are filled by the closure reconciliation pass.
type Ticket struct {
	TicketID      string     `json:"ticket_id"`
	Origin        string     `json:"origin"`
	SymptomCat    string     `json:"symptom_cat"`
	Symptom       string     `json:"symptom"`
	Status        string     `json:"status" validate:"oneof=new open closed"`
	Product       string     `json:"product"`
	TicketOwner   int        `json:"ticket_owner" validate:"gte=1"`
	Language      string     `json:"language"`
	FCR           int        `json:"fcr" validate:"oneof=0 1"`
	Escalated     int        `json:"escalated" validate:"oneof=0 1"`
	TicketCreated time.Time  `json:"ticket_created"`
	TicketClosed  *time.Time `json:"ticket_closed,omitempty"`

	LastInteractionTime                 *time.Time `json:"last_interaction_time,omitempty"`
	ResolutionAfterLastInteractionHours *float64   `json:"resolution_after_last_interaction_hours,omitempty"`
	LifecycleHours                      *float64   `json:"lifecycle_hours,omitempty"`
}

// IsClosed reports whether the ticket is in the closed status.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}

// IsFCR reports whether the ticket was resolved on first contact.
func (t *Ticket) IsFCR() bool {
	return t.FCR == 1
}

// IsEscalated reports whether the ticket was escalated.
func (t *Ticket) IsEscalated() bool {
	return t.Escalated == 1
}

// Interaction is one customer contact attached to a ticket. HandleTime is in
// minutes; SpeedOfAnswer follows the channel's configured unit.
type Interaction struct {
	InteractionID      string    `json:"interaction_id"`
	Channel            string    `json:"channel" validate:"oneof=email phone chat"`
	CustomerID         int       `json:"customer_id" validate:"gte=1"`
	InteractionCreated time.Time `json:"interaction_created"`
	HandleTime         float64   `json:"handle_time" validate:"gte=0"`
	SpeedOfAnswer      float64   `json:"speed_of_answer" validate:"gte=0"`
	InteractionHandled time.Time `json:"interaction_handled"`
	HandledBy          int       `json:"handled_by" validate:"gte=1"`
	Subject            string    `json:"subject"`
	Body               string    `json:"body"`
	TicketID           string    `json:"ticket_id"`
}

// DurationMinutes returns the interaction handle time in minutes.
func (i *Interaction) DurationMinutes() float64 {
	return i.HandleTime
}

// IsEmail reports whether the interaction came in over email.
func (i *Interaction) IsEmail() bool { return i.Channel == ChannelEmail }

// IsPhone reports whether the interaction came in over phone.
func (i *Interaction) IsPhone() bool { return i.Channel == ChannelPhone }

// IsChat reports whether the interaction came in over chat.
func (i *Interaction) IsChat() bool { return i.Channel == ChannelChat }

// Contact is one call or chat session. Answered is set iff the session was
// picked up; Abandoned is set iff the caller disconnected first. Abandoned
// rows are synthetic and reference no interaction or ticket.
type Contact struct {
	ID          string     `json:"id"`
	Initialized time.Time  `json:"initialized"`
	Answered    *time.Time `json:"answered,omitempty"`
	Abandoned   *time.Time `json:"abandoned,omitempty"`
	IsAbandoned int        `json:"is_abandoned" validate:"oneof=0 1"`
}

// WasAbandoned reports whether the session ended before being answered.
func (c *Contact) WasAbandoned() bool {
	return c.IsAbandoned == 1
}

// WaitTimeSeconds returns the wait before abandonment, or nil for answered
// sessions.
func (c *Contact) WaitTimeSeconds() *float64 {
	if !c.WasAbandoned() || c.Abandoned == nil {
		return nil
	}
	secs := c.Abandoned.Sub(c.Initialized).Seconds()
	return &secs
}

// WfmEntry is one (date, agent) workforce-management row. All five time
// fields are minutes and populated only on working days; on weekends they are
// all nil.
type WfmEntry struct {
	Date             string   `json:"date"` // YYYY-MM-DD
	UserID           int      `json:"user_id" validate:"gte=1"`
	PaidTime         *float64 `json:"paid_time,omitempty"`
	ScheduledTime    *float64 `json:"scheduled_time,omitempty"`
	AvailableTime    *float64 `json:"available_time,omitempty"`
	InteractionsTime *float64 `json:"interactions_time,omitempty"`
	ProductiveTime   *float64 `json:"productive_time,omitempty"`
}

// IsWorkingDay reports whether the row carries working-day time allocations.
func (w *WfmEntry) IsWorkingDay() bool {
	return w.PaidTime != nil
}

// QaEntry is one quality-assurance evaluation of a sampled interaction.
type QaEntry struct {
	EvalID             string  `json:"eval_id"`
	InteractionID      string  `json:"interaction_id"`
	QAScore            float64 `json:"qa_score" validate:"gte=0,lte=1"`
	CustomerCritical   int     `json:"customer_critical" validate:"oneof=0 1"`
	BusinessCritical   int     `json:"business_critical" validate:"oneof=0 1"`
	ComplianceCritical int     `json:"compliance_critical" validate:"oneof=0 1"`
}

// HasCriticalFlags reports whether any critical flag is set.
func (q *QaEntry) HasCriticalFlags() bool {
	return q.CustomerCritical == 1 || q.BusinessCritical == 1 || q.ComplianceCritical == 1
}

// IsPerfectScore reports whether the evaluation scored 1.0.
func (q *QaEntry) IsPerfectScore() bool {
	return q.QAScore == 1.0
}
