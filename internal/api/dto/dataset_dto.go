package dto

import (
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/ingest"
)

// UploadResponse acknowledges a new dataset session.
type UploadResponse struct {
	DatasetID string             `json:"dataset_id"`
	Report    *domain.LoadReport `json:"report"`
}

// TicketRecordResponse is one normalized record with timestamps rendered in
// the canonical format and the derived duration in hours.
type TicketRecordResponse struct {
	IssueKey        *string  `json:"issue_key"`
	Created         *string  `json:"created"`
	Resolved        *string  `json:"resolved"`
	IssueType       *string  `json:"issue_type"`
	Location        *string  `json:"location"`
	Assignee        *string  `json:"assignee"`
	Status          *string  `json:"status"`
	Priority        *string  `json:"priority"`
	ResolutionHours *float64 `json:"resolution_hours"`
	Row             int      `json:"row"`
}

// TicketRecordFromDomain maps a record for the API response.
func TicketRecordFromDomain(record *domain.TicketRecord) TicketRecordResponse {
	resp := TicketRecordResponse{
		IssueKey:  record.IssueKey,
		IssueType: record.IssueType,
		Location:  record.Location,
		Assignee:  record.Assignee,
		Status:    record.Status,
		Priority:  record.Priority,
		Row:       record.Row,
	}
	if record.Created != nil {
		formatted := record.Created.Format(ingest.TimestampFormat)
		resp.Created = &formatted
	}
	if record.Resolved != nil {
		formatted := record.Resolved.Format(ingest.TimestampFormat)
		resp.Resolved = &formatted
	}
	if record.ResolutionDuration != nil {
		hours := record.ResolutionDuration.Hours()
		resp.ResolutionHours = &hours
	}
	return resp
}
