package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
)

// ErrMalformedInput is returned when the upload cannot be parsed as
// delimited tabular text at all. It is the only fatal load condition;
// row-level problems are accumulated in the LoadReport instead.
var ErrMalformedInput = errors.New("malformed input")

// Load parses raw CSV content into an immutable Dataset. It is a pure
// function of its input: no I/O, no shared state.
//
// The header row is matched against domain.ExpectedColumns. Missing expected
// columns do not fail the load; they are recorded in the report and the
// corresponding record fields stay nil for every row. Unrecognized columns
// are preserved per record in the Extra side channel.
//
// Per row, an unparseable Created cell rejects the row; an unparseable
// Resolved cell nulls the field and records a warning. A Resolved earlier
// than Created keeps the record but nulls the derived duration and flags the
// anomaly.
func Load(raw []byte) (*domain.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMalformedInput)
	}

	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	report := &domain.LoadReport{
		Rejected: []domain.RowProblem{},
		Warnings: []domain.RowProblem{},
	}
	expected := make(map[string]bool, len(domain.ExpectedColumns()))
	for _, name := range domain.ExpectedColumns() {
		expected[name] = true
		if _, ok := index[name]; ok {
			report.Columns = append(report.Columns, name)
		} else {
			report.MissingColumns = append(report.MissingColumns, name)
		}
	}
	for _, name := range header {
		name = strings.TrimSpace(name)
		if !expected[name] {
			report.ExtraColumns = append(report.ExtraColumns, name)
		}
	}

	records := make([]*domain.TicketRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 1
		report.TotalRows++

		// present means the column exists in the header; a ragged row that
		// is too short for the column yields an empty value, not absence.
		cell := func(column string) (string, bool) {
			idx, ok := index[column]
			if !ok {
				return "", false
			}
			if idx >= len(row) {
				return "", true
			}
			return strings.TrimSpace(row[idx]), true
		}

		record := &domain.TicketRecord{Row: rowNum}

		if value, ok := cell(domain.ColumnCreated); ok {
			ts, err := ParseTimestamp(value)
			if err != nil {
				report.Rejected = append(report.Rejected, domain.RowProblem{
					Row:    rowNum,
					Reason: domain.ReasonInvalidCreatedTimestamp,
				})
				continue
			}
			record.Created = &ts
		}

		if value, ok := cell(domain.ColumnResolved); ok && value != "" {
			ts, err := ParseTimestamp(value)
			if err != nil {
				report.Warnings = append(report.Warnings, domain.RowProblem{
					Row:    rowNum,
					Reason: domain.ReasonInvalidResolvedTimestamp,
				})
			} else {
				record.Resolved = &ts
			}
		}

		record.IssueType = optional(cell(domain.ColumnIssueType))
		record.Location = optional(cell(domain.ColumnLocation))
		record.Assignee = optional(cell(domain.ColumnAssignee))
		record.Status = optional(cell(domain.ColumnStatus))
		record.Priority = optional(cell(domain.ColumnPriority))
		record.IssueKey = optional(cell(domain.ColumnIssueKey))

		for _, name := range report.ExtraColumns {
			if value, ok := cell(name); ok {
				if record.Extra == nil {
					record.Extra = make(map[string]string, len(report.ExtraColumns))
				}
				record.Extra[name] = value
			}
		}

		if record.Created != nil && record.Resolved != nil {
			duration := record.Resolved.Sub(*record.Created)
			if duration < 0 {
				report.Warnings = append(report.Warnings, domain.RowProblem{
					Row:    rowNum,
					Reason: domain.ReasonNegativeResolution,
				})
			} else {
				record.ResolutionDuration = &duration
			}
		}

		records = append(records, record)
	}

	report.Accepted = len(records)
	return &domain.Dataset{Records: records, Report: report}, nil
}

func optional(value string, present bool) *string {
	if !present {
		return nil
	}
	return &value
}
