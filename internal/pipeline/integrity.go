package pipeline

import "fmt"

// ValidateIntegrity checks cross-table referential integrity and global
// business rules over a complete dataset: every ticket owner and interaction
// handler must be a known user id, every interaction must reference a known
// ticket, FCR tickets must have exactly one interaction, and closed tickets
// must carry a closure date. Unlike the generators' soft validation, the
// first violation aborts with an error. Generate does not call this;
// callers opt in.
func ValidateIntegrity(ds *Dataset) error {
	userIDs := make(map[int]struct{}, len(ds.Users))
	for i := range ds.Users {
		userIDs[ds.Users[i].ID] = struct{}{}
	}

	ticketIDs := make(map[string]struct{}, len(ds.Tickets))
	for i := range ds.Tickets {
		ticketIDs[ds.Tickets[i].TicketID] = struct{}{}
	}

	for i := range ds.Tickets {
		t := &ds.Tickets[i]
		if _, ok := userIDs[t.TicketOwner]; !ok {
			return fmt.Errorf("ticket %s has invalid owner %d", t.TicketID, t.TicketOwner)
		}
		if t.IsClosed() && t.TicketClosed == nil {
			return fmt.Errorf("closed ticket %s missing closure date", t.TicketID)
		}
	}

	interactionsPerTicket := make(map[string]int, len(ds.Tickets))
	for i := range ds.Interactions {
		in := &ds.Interactions[i]
		if _, ok := userIDs[in.HandledBy]; !ok {
			return fmt.Errorf("interaction %s has invalid handler %d", in.InteractionID, in.HandledBy)
		}
		if _, ok := ticketIDs[in.TicketID]; !ok {
			return fmt.Errorf("interaction %s references unknown ticket %s", in.InteractionID, in.TicketID)
		}
		interactionsPerTicket[in.TicketID]++
	}

	for i := range ds.Tickets {
		t := &ds.Tickets[i]
		if t.IsFCR() && interactionsPerTicket[t.TicketID] != 1 {
			return fmt.Errorf("fcr ticket %s has %d interactions instead of 1",
				t.TicketID, interactionsPerTicket[t.TicketID])
		}
	}

	return nil
}
