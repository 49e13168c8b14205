package domain

import "time"

// Canonical header names recognized in uploaded CSV exports. Matching is
// exact after leading/trailing whitespace trim; no case folding.
const (
	ColumnCreated   = "Created"
	ColumnResolved  = "Resolved"
	ColumnIssueType = "Issue Type"
	ColumnLocation  = "Location"
	ColumnAssignee  = "Assignee"
	ColumnStatus    = "Status"
	ColumnPriority  = "Priority"
	ColumnIssueKey  = "Issue key"
)

// ExpectedColumns returns the canonical column order used for both import
// recognition and export serialization.
func ExpectedColumns() []string {
	return []string{
		ColumnCreated,
		ColumnResolved,
		ColumnIssueType,
		ColumnLocation,
		ColumnAssignee,
		ColumnStatus,
		ColumnPriority,
		ColumnIssueKey,
	}
}

// TicketRecord is one normalized row of an uploaded ticket export. Fields
// backed by a missing column are nil; categorical values are copied verbatim
// apart from whitespace trimming, so inconsistent casing in the source
// surfaces as distinct groups downstream.
type TicketRecord struct {
	IssueKey  *string    `json:"issue_key"`
	Created   *time.Time `json:"created"`
	Resolved  *time.Time `json:"resolved"`
	IssueType *string    `json:"issue_type"`
	Location  *string    `json:"location"`
	Assignee  *string    `json:"assignee"`
	Status    *string    `json:"status"`
	Priority  *string    `json:"priority"`

	// ResolutionDuration is Resolved - Created when both parse and the
	// difference is non-negative; nil otherwise.
	ResolutionDuration *time.Duration `json:"resolution_duration"`

	// Extra holds values from columns outside the canonical set, keyed by
	// header name.
	Extra map[string]string `json:"extra,omitempty"`

	// Row is the 1-based data row index in the source file (header excluded).
	Row int `json:"row"`
}
