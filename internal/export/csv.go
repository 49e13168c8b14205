package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/ingest"
)

// DurationColumn is the derived column appended after the canonical set,
// holding the resolution duration in hours.
const DurationColumn = "Resolution Time (hrs)"

// ToCSV serializes a view back to CSV in the canonical column order plus the
// derived duration column. Timestamps use the canonical format, so the
// output reloads to an equivalent dataset: same accepted count, same field
// values. The duration column lands in the Extra side channel on reload.
func ToCSV(v domain.View) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := append(domain.ExpectedColumns(), DurationColumn)
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, record := range v.Records {
		row := []string{
			formatTimestamp(record.Created),
			formatTimestamp(record.Resolved),
			deref(record.IssueType),
			deref(record.Location),
			deref(record.Assignee),
			deref(record.Status),
			deref(record.Priority),
			deref(record.IssueKey),
			formatDuration(record),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTimestamp(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(ingest.TimestampFormat)
}

func formatDuration(record *domain.TicketRecord) string {
	if record.ResolutionDuration == nil {
		return ""
	}
	return strconv.FormatFloat(record.ResolutionDuration.Hours(), 'f', 2, 64)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
