package query

import (
	"math"
	"sort"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
)

// Stats are the dashboard overview metrics for a view.
type Stats struct {
	TotalTickets           int     `json:"total_tickets"`
	ResolvedTickets        int     `json:"resolved_tickets"`
	AverageResolutionHours float64 `json:"average_resolution_hours"`
	UniqueLocations        int     `json:"unique_locations"`
}

// Summarize computes overview metrics. The resolution average covers only
// records with a derived duration and is rounded to two decimals; it is zero
// when nothing resolved.
func Summarize(v domain.View) Stats {
	stats := Stats{TotalTickets: len(v.Records)}

	var totalHours float64
	locations := make(map[string]bool)
	for _, record := range v.Records {
		if record.ResolutionDuration != nil {
			stats.ResolvedTickets++
			totalHours += record.ResolutionDuration.Hours()
		}
		if record.Location != nil && *record.Location != "" {
			locations[*record.Location] = true
		}
	}
	stats.UniqueLocations = len(locations)
	if stats.ResolvedTickets > 0 {
		stats.AverageResolutionHours = math.Round(totalHours/float64(stats.ResolvedTickets)*100) / 100
	}
	return stats
}

// SortByResolution returns a new view ordered by resolution duration,
// longest first, records without a duration last. Ties keep input order.
// The input view is left untouched.
func SortByResolution(v domain.View) domain.View {
	records := make([]*domain.TicketRecord, len(v.Records))
	copy(records, v.Records)
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := records[i].ResolutionDuration, records[j].ResolutionDuration
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di > *dj
		}
	})
	return domain.View{Records: records}
}
