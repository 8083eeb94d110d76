package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PSavvateev/cs-data-generator/internal/models"
	"github.com/PSavvateev/cs-data-generator/internal/pipeline"
)

func sampleDataset() *pipeline.Dataset {
	created := time.Date(2024, 2, 5, 9, 30, 15, 0, time.UTC)
	closed := created.Add(48 * time.Hour)
	lifecycle := 48.0
	scheduled := 480.0

	return &pipeline.Dataset{
		Users: []models.User{
			{ID: 1, FullName: "Jane Doe", FirstName: "Jane", LastName: "Doe", FTE: 0.75,
				Position: "support_agent", StartDate: "2023-06-01", Status: "active", HourlyRateEUR: 13.25},
		},
		Customers: []models.Customer{
			{ID: 1, Name: "John Smith", Email: "john@example.com", Phone: "+31612345678", Country: "netherlands"},
		},
		Tickets: []models.Ticket{
			{TicketID: "TKT-00001", Origin: "email", SymptomCat: "rma", Symptom: "replacement",
				Status: "closed", Product: "widget", TicketOwner: 1, Language: "dutch",
				FCR: 1, TicketCreated: created, TicketClosed: &closed,
				LastInteractionTime: &created, ResolutionAfterLastInteractionHours: &lifecycle,
				LifecycleHours: &lifecycle},
			{TicketID: "TKT-00002", Origin: "phone", SymptomCat: "rma", Symptom: "repair",
				Status: "open", Product: "widget", TicketOwner: 1, Language: "dutch",
				TicketCreated: created},
		},
		Interactions: []models.Interaction{
			{InteractionID: "INT-000001", Channel: "email", CustomerID: 1,
				InteractionCreated: created, HandleTime: 7.5, SpeedOfAnswer: 120,
				InteractionHandled: created.Add(8 * time.Minute), HandledBy: 1, TicketID: "TKT-00001"},
		},
		Calls: []models.Contact{
			{ID: "CAL-INT-000001", Initialized: created, Answered: &closed},
		},
		WFM: []models.WfmEntry{
			{Date: "2024-02-05", UserID: 1, PaidTime: &scheduled, ScheduledTime: &scheduled,
				AvailableTime: &scheduled, InteractionsTime: &scheduled, ProductiveTime: &scheduled},
			{Date: "2024-02-10", UserID: 1},
		},
		QA: []models.QaEntry{
			{EvalID: "QA-000001", InteractionID: "INT-000001", QAScore: 0.92},
		},
	}
}

func TestTablesCellText(t *testing.T) {
	ds := sampleDataset()
	tables := Tables(ds)
	require.Len(t, tables, 8)

	byName := make(map[string]Table, len(tables))
	for _, tb := range tables {
		byName[tb.Name] = tb
	}

	tickets := byName["tickets"]
	require.Len(t, tickets.Rows, 2)
	closedRow := tickets.Rows[0]
	assert.Equal(t, "TKT-00001", closedRow[0])
	assert.Equal(t, "2024-02-05 09:30:15", closedRow[10])
	assert.Equal(t, "2024-02-07 09:30:15", closedRow[11])
	assert.Equal(t, "48", closedRow[14])

	// Open tickets leave the closure columns empty.
	openRow := tickets.Rows[1]
	assert.Equal(t, "", openRow[11])
	assert.Equal(t, "", openRow[12])
	assert.Equal(t, "", openRow[13])
	assert.Equal(t, "", openRow[14])

	users := byName["users"]
	assert.Equal(t, "0.75", users.Rows[0][4])
	assert.Equal(t, "13.25", users.Rows[0][8])

	wfm := byName["wfm"]
	assert.Equal(t, "480", wfm.Rows[0][2])
	assert.Equal(t, "", wfm.Rows[1][2])

	chats := byName["chats"]
	assert.Empty(t, chats.Rows)
	assert.NotEmpty(t, chats.Header)
}

func TestWriteCSV(t *testing.T) {
	ds := sampleDataset()
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := WriteCSV(ds, dir)
	require.NoError(t, err)
	require.Len(t, paths, 8)

	want := []string{
		"users_table.csv", "customers_table.csv", "tickets_table.csv",
		"interactions_table.csv", "calls_table.csv", "chats_table.csv",
		"wfm_table.csv", "qa_table.csv",
	}
	for i, name := range want {
		assert.Equal(t, filepath.Join(dir, name), paths[i])
	}

	f, err := os.Open(filepath.Join(dir, "tickets_table.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ticket_id", records[0][0])
	assert.Equal(t, "TKT-00001", records[1][0])
}

func TestWriteExcel(t *testing.T) {
	ds := sampleDataset()
	path := filepath.Join(t.TempDir(), "dataset.xlsx")

	require.NoError(t, WriteExcel(ds, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
