// Package export persists a generated dataset to tabular files: one CSV per
// table, or one Excel workbook with a sheet per table. The core pipeline has
// no dependency on the persisted representation.
package export

import (
	"strconv"
	"time"

	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/pipeline"
)

const timestampLayout = "2006-01-02 15:04:05"

// Table is one named, fully rendered export table.
type Table struct {
	Name   string // dataset key, also the Excel sheet name
	File   string // CSV file name
	Header []string
	Rows   [][]string
}

// Tables renders every dataset table to cell text in export order.
func Tables(ds *pipeline.Dataset) []Table {
	return []Table{
		usersTable(ds.Users),
		customersTable(ds.Customers),
		ticketsTable(ds.Tickets),
		interactionsTable(ds.Interactions),
		contactsTable("calls", "calls_table.csv", ds.Calls),
		contactsTable("chats", "chats_table.csv", ds.Chats),
		wfmTable(ds.WFM),
		qaTable(ds.QA),
	}
}

func usersTable(users []models.User) Table {
	t := Table{
		Name:   "users",
		File:   "users_table.csv",
		Header: []string{"id", "full_name", "first_name", "last_name", "fte", "position", "start_date", "status", "hourly_rate_eur"},
	}
	for i := range users {
		u := &users[i]
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(u.ID), u.FullName, u.FirstName, u.LastName,
			formatFloat(u.FTE), u.Position, u.StartDate, u.Status,
			formatFloat(u.HourlyRateEUR),
		})
	}
	return t
}

func customersTable(customers []models.Customer) Table {
	t := Table{
		Name:   "customers",
		File:   "customers_table.csv",
		Header: []string{"customer_id", "name", "email", "phone", "country"},
	}
	for i := range customers {
		c := &customers[i]
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(c.ID), c.Name, c.Email, c.Phone, c.Country,
		})
	}
	return t
}

func ticketsTable(tickets []models.Ticket) Table {
	t := Table{
		Name: "tickets",
		File: "tickets_table.csv",
		Header: []string{
			"ticket_id", "origin", "symptom_cat", "symptom", "status", "product",
			"ticket_owner", "language", "fcr", "escalated", "ticket_created",
			"ticket_closed", "last_interaction_time",
			"resolution_after_last_interaction_hours", "lifecycle_hours",
		},
	}
	for i := range tickets {
		tk := &tickets[i]
		t.Rows = append(t.Rows, []string{
			tk.TicketID, tk.Origin, tk.SymptomCat, tk.Symptom, tk.Status, tk.Product,
			strconv.Itoa(tk.TicketOwner), tk.Language,
			strconv.Itoa(tk.FCR), strconv.Itoa(tk.Escalated),
			formatTime(tk.TicketCreated),
			formatTimePtr(tk.TicketClosed),
			formatTimePtr(tk.LastInteractionTime),
			formatFloatPtr(tk.ResolutionAfterLastInteractionHours),
			formatFloatPtr(tk.LifecycleHours),
		})
	}
	return t
}

func interactionsTable(interactions []models.Interaction) Table {
	t := Table{
		Name: "interactions",
		File: "interactions_table.csv",
		Header: []string{
			"interaction_id", "channel", "customer_id", "interaction_created",
			"handle_time", "speed_of_answer", "interaction_handled", "handled_by",
			"subject", "body", "ticket_id",
		},
	}
	for i := range interactions {
		in := &interactions[i]
		t.Rows = append(t.Rows, []string{
			in.InteractionID, in.Channel, strconv.Itoa(in.CustomerID),
			formatTime(in.InteractionCreated),
			formatFloat(in.HandleTime), formatFloat(in.SpeedOfAnswer),
			formatTime(in.InteractionHandled), strconv.Itoa(in.HandledBy),
			in.Subject, in.Body, in.TicketID,
		})
	}
	return t
}

func contactsTable(name, file string, contacts []models.Contact) Table {
	t := Table{
		Name:   name,
		File:   file,
		Header: []string{"id", "initialized", "answered", "abandoned", "is_abandoned"},
	}
	for i := range contacts {
		c := &contacts[i]
		t.Rows = append(t.Rows, []string{
			c.ID, formatTime(c.Initialized),
			formatTimePtr(c.Answered), formatTimePtr(c.Abandoned),
			strconv.Itoa(c.IsAbandoned),
		})
	}
	return t
}

func wfmTable(entries []models.WfmEntry) Table {
	t := Table{
		Name: "wfm",
		File: "wfm_table.csv",
		Header: []string{
			"date", "user_id", "paid_time", "scheduled_time", "available_time",
			"interactions_time", "productive_time",
		},
	}
	for i := range entries {
		e := &entries[i]
		t.Rows = append(t.Rows, []string{
			e.Date, strconv.Itoa(e.UserID),
			formatFloatPtr(e.PaidTime), formatFloatPtr(e.ScheduledTime),
			formatFloatPtr(e.AvailableTime), formatFloatPtr(e.InteractionsTime),
			formatFloatPtr(e.ProductiveTime),
		})
	}
	return t
}

func qaTable(entries []models.QaEntry) Table {
	t := Table{
		Name: "qa",
		File: "qa_table.csv",
		Header: []string{
			"eval_id", "interaction_id", "qa_score", "customer_critical",
			"business_critical", "compliance_critical",
		},
	}
	for i := range entries {
		e := &entries[i]
		t.Rows = append(t.Rows, []string{
			e.EvalID, e.InteractionID, formatFloat(e.QAScore),
			strconv.Itoa(e.CustomerCritical), strconv.Itoa(e.BusinessCritical),
			strconv.Itoa(e.ComplianceCritical),
		})
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatTime(t time.Time) string {
	return t.Format(timestampLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
