// Package report prints a human-readable summary of a generated dataset:
// achieved distributions next to their configured targets.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/PSavvateev/cs-data-generator/internal/config"
	"github.com/PSavvateev/cs-data-generator/internal/generators"
	"github.com/PSavvateev/cs-data-generator/internal/pipeline"
)

// Write renders the full dataset summary to w.
func Write(w io.Writer, cfg *config.Config, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "=== Dataset Summary ===")
	fmt.Fprintf(w, "users: %d  customers: %d  tickets: %d  interactions: %d\n",
		len(ds.Users), len(ds.Customers), len(ds.Tickets), len(ds.Interactions))
	fmt.Fprintf(w, "calls: %d  chats: %d  wfm rows: %d  qa evaluations: %d\n",
		len(ds.Calls), len(ds.Chats), len(ds.WFM), len(ds.QA))

	writeFCR(w, cfg, ds)
	writeChannels(w, ds)
	writeAbandonment(w, ds)
	writeCountries(w, cfg, ds)
	writeAgents(w, ds)
	writeWFM(w, ds)
	writeQA(w, ds)
}

func writeFCR(w io.Writer, cfg *config.Config, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "\n--- FCR by symptom category (achieved vs target) ---")
	rates := generators.FCRRatesBySymptom(ds.Tickets)
	for _, cat := range sortedKeys(rates) {
		target := cfg.SymptomFCR[cat].Mean
		fmt.Fprintf(w, "%-24s %6.1f%%  (target %.1f%%)\n", cat, rates[cat]*100, target*100)
	}
}

func writeChannels(w io.Writer, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "\n--- Channel performance ---")
	stats := generators.ChannelPerformance(ds.Interactions)
	for _, ch := range sortedKeys(stats) {
		s := stats[ch]
		fmt.Fprintf(w, "%-8s %7d interactions  avg handle %.1f min  avg answer %.1f\n",
			ch, s.Total, s.AvgHandleTime, s.AvgSpeedOfAnswer)
	}
}

func writeAbandonment(w io.Writer, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "\n--- Abandonment ---")
	calls := generators.Abandonment(ds.Calls)
	chats := generators.Abandonment(ds.Chats)
	fmt.Fprintf(w, "calls: %d total, %d abandoned (%.1f%%), avg abandoned wait %.0f s\n",
		calls.Total, calls.Abandoned, calls.AbandonmentRate*100, calls.AvgAbandonedWaitSec)
	fmt.Fprintf(w, "chats: %d total, %d abandoned (%.1f%%), avg abandoned wait %.0f s\n",
		chats.Total, chats.Abandoned, chats.AbandonmentRate*100, chats.AvgAbandonedWaitSec)
}

func writeCountries(w io.Writer, cfg *config.Config, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "\n--- Customer countries (achieved vs target) ---")
	shares := generators.CountryShares(ds.Customers)
	for _, country := range sortedKeys(shares) {
		fmt.Fprintf(w, "%-16s %6.1f%%  (target %.1f%%)\n",
			country, shares[country], cfg.Countries[country]*100)
	}
}

func writeAgents(w io.Writer, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "\n--- Agents ---")
	var partTime, fullTime int
	for i := range ds.Users {
		if ds.Users[i].IsPartTime() {
			partTime++
		} else {
			fullTime++
		}
	}
	fmt.Fprintf(w, "%d agents: %d full-time, %d part-time\n", len(ds.Users), fullTime, partTime)
}

func writeWFM(w io.Writer, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "\n--- WFM averages per agent (working days) ---")
	byUser := generators.UtilizationByUser(ds.WFM)
	ids := make([]int, 0, len(byUser))
	for id := range byUser {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s := byUser[id]
		fmt.Fprintf(w, "agent %-3d %4d days  avg scheduled %.0f min  avg available %.0f min\n",
			id, s.WorkingDays, s.AvgScheduledPerDay, s.AvgAvailablePerDay)
	}
}

func writeQA(w io.Writer, ds *pipeline.Dataset) {
	fmt.Fprintln(w, "\n--- QA ---")
	m := generators.SummarizeQa(ds.QA)
	if m.TotalEvaluations == 0 {
		fmt.Fprintln(w, "no evaluations")
		return
	}
	fmt.Fprintf(w, "%d evaluations  avg score %.3f  (non-critical avg %.3f)\n",
		m.TotalEvaluations, m.OverallAvgScore, m.AvgScoreNonCritical)
	fmt.Fprintf(w, "critical rates: customer %.1f%%  business %.1f%%  compliance %.1f%%  any %.1f%%\n",
		m.CustomerCriticalRate*100, m.BusinessCriticalRate*100,
		m.ComplianceCriticalRate*100, m.AnyCriticalRate*100)
	fmt.Fprintf(w, "perfect scores: %d\n", m.PerfectScoreCount)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
