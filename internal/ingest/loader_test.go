package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
)

const sampleCSV = `Issue key,Issue Type,Status,Priority,Assignee,Location,Created,Resolved
IT-1,Hardware,Done,High,Alice,Berlin HQ,2024-01-01 08:00,2024-01-01 12:00
IT-2,Network,Done,Medium,Bob,Paris,2024-01-01 09:30,2024-01-02 09:30
IT-3,Software,Open,Low,Alice,Berlin HQ,2024-01-02 10:00,
IT-4,Network,In Progress,High,Carol,Lagos,2024-01-02 11:15,2024-01-03 08:00
IT-5,Hardware,Done,Low,Bob,Paris,2024-01-03 07:45,2024-01-03 09:45
`

func TestLoadSampleExport(t *testing.T) {
	dataset, err := Load([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := dataset.Report
	if report.TotalRows != 5 || report.Accepted != 5 || len(report.Rejected) != 0 {
		t.Fatalf("expected 5 accepted of 5, got %+v", report)
	}
	if len(report.MissingColumns) != 0 {
		t.Fatalf("unexpected missing columns: %v", report.MissingColumns)
	}
	if len(report.ExtraColumns) != 0 {
		t.Fatalf("unexpected extra columns: %v", report.ExtraColumns)
	}

	// Input order is preserved.
	for i, want := range []string{"IT-1", "IT-2", "IT-3", "IT-4", "IT-5"} {
		if got := dataset.Records[i].IssueKey; got == nil || *got != want {
			t.Fatalf("record %d: issue key = %v, want %s", i, got, want)
		}
	}

	// First row resolved exactly four hours after creation.
	first := dataset.Records[0]
	if first.ResolutionDuration == nil || *first.ResolutionDuration != 4*time.Hour {
		t.Fatalf("expected 4h resolution, got %v", first.ResolutionDuration)
	}

	// Third row is still open: no Resolved, no duration, no warning.
	third := dataset.Records[2]
	if third.Resolved != nil || third.ResolutionDuration != nil {
		t.Fatalf("expected open ticket, got resolved=%v duration=%v", third.Resolved, third.ResolutionDuration)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", report.Warnings)
	}
}

func TestLoadRowAccounting(t *testing.T) {
	input := `Created,Issue key
2024-01-01 08:00,IT-1
not-a-date,IT-2
2024-01-03 08:00,IT-3
,IT-4
`
	dataset, err := Load([]byte(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := dataset.Report
	if report.Accepted+len(report.Rejected) != report.TotalRows {
		t.Fatalf("accepted(%d) + rejected(%d) != total(%d)", report.Accepted, len(report.Rejected), report.TotalRows)
	}
	if report.Accepted != 2 || len(report.Rejected) != 2 {
		t.Fatalf("expected 2 accepted, 2 rejected, got %+v", report)
	}
	for _, problem := range report.Rejected {
		if problem.Reason != domain.ReasonInvalidCreatedTimestamp {
			t.Fatalf("unexpected rejection reason %q", problem.Reason)
		}
	}
	if report.Rejected[0].Row != 2 || report.Rejected[1].Row != 4 {
		t.Fatalf("unexpected rejected rows: %+v", report.Rejected)
	}
}

func TestLoadMissingLocationColumn(t *testing.T) {
	input := strings.ReplaceAll(sampleCSV, "Location,", "")
	input = strings.ReplaceAll(input, "Berlin HQ,", "")
	input = strings.ReplaceAll(input, "Paris,", "")
	input = strings.ReplaceAll(input, "Lagos,", "")

	dataset, err := Load([]byte(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := dataset.Report
	if len(report.MissingColumns) != 1 || report.MissingColumns[0] != domain.ColumnLocation {
		t.Fatalf("missing columns = %v, want [Location]", report.MissingColumns)
	}
	if report.Accepted != 5 {
		t.Fatalf("expected 5 accepted, got %d", report.Accepted)
	}
	for i, record := range dataset.Records {
		if record.Location != nil {
			t.Fatalf("record %d: location = %q, want nil", i, *record.Location)
		}
	}
}

func TestLoadInvalidResolvedWarns(t *testing.T) {
	input := `Created,Resolved,Issue key
2024-01-01 08:00,garbage,IT-1
`
	dataset, err := Load([]byte(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := dataset.Report
	if report.Accepted != 1 || len(report.Rejected) != 0 {
		t.Fatalf("row should be accepted, got %+v", report)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Reason != domain.ReasonInvalidResolvedTimestamp {
		t.Fatalf("warnings = %+v", report.Warnings)
	}
	if dataset.Records[0].Resolved != nil {
		t.Fatalf("resolved should be nil, got %v", dataset.Records[0].Resolved)
	}
}

func TestLoadResolvedBeforeCreated(t *testing.T) {
	input := `Created,Resolved,Issue key
2024-01-02 08:00,2024-01-01 08:00,IT-1
`
	dataset, err := Load([]byte(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := dataset.Report
	if report.Accepted != 1 {
		t.Fatalf("record should be retained, got %+v", report)
	}
	record := dataset.Records[0]
	if record.ResolutionDuration != nil {
		t.Fatalf("duration should be nil, got %v", record.ResolutionDuration)
	}
	if record.Resolved == nil {
		t.Fatal("resolved timestamp itself should be kept")
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Reason != domain.ReasonNegativeResolution {
		t.Fatalf("warnings = %+v", report.Warnings)
	}
}

func TestLoadTolerantTimestampFormats(t *testing.T) {
	cases := []struct {
		value string
		want  time.Time
	}{
		{"2024-03-05 14:30", time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)},
		{"2024-03-05 14:30:45", time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC)},
		{"2024-03-05T14:30:45", time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC)},
		{"2024-03-05T14:30:45Z", time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC)},
		{"2024-03-05T14:30:45+02:00", time.Date(2024, 3, 5, 12, 30, 45, 0, time.UTC)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.value)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", tc.value, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}

	if _, err := ParseTimestamp("05/03/2024"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadMalformedInput(t *testing.T) {
	for name, input := range map[string]string{
		"empty":           "",
		"unbalancedQuote": "Created,Issue key\n\"2024-01-01 08:00,IT-1\n",
	} {
		if _, err := Load([]byte(input)); !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%s: expected ErrMalformedInput, got %v", name, err)
		}
	}
}

func TestLoadExtraColumnSideChannel(t *testing.T) {
	input := `Created,Issue key,Reporter
2024-01-01 08:00,IT-1,dana
`
	dataset, err := Load([]byte(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	report := dataset.Report
	if len(report.ExtraColumns) != 1 || report.ExtraColumns[0] != "Reporter" {
		t.Fatalf("extra columns = %v", report.ExtraColumns)
	}
	if got := dataset.Records[0].Extra["Reporter"]; got != "dana" {
		t.Fatalf("extra value = %q, want dana", got)
	}
}

func TestLoadTrimsButPreservesCase(t *testing.T) {
	input := "Created,Issue Type,Issue key\n2024-01-01 08:00,  hardware  ,IT-1\n"
	dataset, err := Load([]byte(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := dataset.Records[0].IssueType; got == nil || *got != "hardware" {
		t.Fatalf("issue type = %v, want trimmed lowercase literal", got)
	}
}
