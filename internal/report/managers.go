package report

import (
	"sort"

	"estlens/internal/model"
	"estlens/internal/names"
	"estlens/internal/numutil"
	"estlens/internal/variance"
)

// ManagerStat is one manager's portfolio rollup. AvgBidAccuracy is the mean
// realized/bid ratio over the manager's qualifying recapped events (1.0 is a
// perfect bid, above 1 ran over); it is nil when the manager has no usable
// recaps, which is different from an accuracy of zero.
type ManagerStat struct {
	Name            string   `json:"name"`
	EventCount      int      `json:"eventCount"`
	TotalRevenue    float64  `json:"totalRevenue"`
	AvgEventSize    float64  `json:"avgEventSize"`
	ClientsServed   int      `json:"clientsServed"`
	RecapEventCount int      `json:"recapEventCount"`
	AvgBidAccuracy  *float64 `json:"avgBidAccuracy"`
}

// ManagerPerformance is the per-manager artifact.
type ManagerPerformance struct {
	TotalManagers int           `json:"totalManagers"`
	Managers      []ManagerStat `json:"managers"`
}

// buildManagerPerformance groups events by canonicalized manager name.
// Events with no manager at all are skipped rather than grouped under a
// placeholder; an unattributed event says nothing about any manager.
func buildManagerPerformance(events []model.EventRecord, canon *names.Canonicalizer) ManagerPerformance {
	type acc struct {
		count      int
		revenue    float64
		clients    map[string]struct{}
		recapCount int
		accuracies []float64
	}
	managers := make(map[string]*acc)
	var order []string

	for i := range events {
		r := &events[i]
		if r.EventManager == "" {
			continue
		}
		name := canon.Canonicalize(r.EventManager)
		if name == "" {
			continue
		}
		m, ok := managers[name]
		if !ok {
			m = &acc{clients: make(map[string]struct{})}
			managers[name] = m
			order = append(order, name)
		}
		m.count++
		m.revenue += r.Revenue()
		if r.Client != "" {
			m.clients[r.Client] = struct{}{}
		}
		// Recap counting follows the variance policy: an event counts as
		// recapped only when it has at least one qualifying section.
		if bid, actual, ok := variance.RealizedTotals(r); ok {
			m.recapCount++
			if bid > 0 {
				m.accuracies = append(m.accuracies, actual/bid)
			}
		}
	}

	rows := make([]ManagerStat, 0, len(order))
	for _, name := range order {
		m := managers[name]
		stat := ManagerStat{
			Name:            name,
			EventCount:      m.count,
			TotalRevenue:    numutil.Round2(m.revenue),
			AvgEventSize:    numutil.Round2(m.revenue / float64(m.count)),
			ClientsServed:   len(m.clients),
			RecapEventCount: m.recapCount,
		}
		if avg, ok := numutil.Mean(m.accuracies); ok {
			rounded := numutil.Round2(avg)
			stat.AvgBidAccuracy = &rounded
		}
		rows = append(rows, stat)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EventCount > rows[j].EventCount
	})
	return ManagerPerformance{
		TotalManagers: len(rows),
		Managers:      rows,
	}
}
