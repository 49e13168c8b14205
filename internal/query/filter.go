package query

import (
	"time"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
)

// Spec narrows a dataset. Nil/empty options impose no constraint; populated
// options compose with logical AND. Set options match the literal trimmed
// field value; a nil field never matches a populated set.
type Spec struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Locations   []string
	IssueTypes  []string
	Statuses    []string
	Priorities  []string
	Assignees   []string
}

// Filter returns a view over the records of d matching spec, in input order.
// The base dataset is never mutated; repeated calls with the same spec yield
// identical views.
func Filter(d *domain.Dataset, spec Spec) domain.View {
	return FilterView(d.All(), spec)
}

// FilterView applies spec to an existing view. Filtering is idempotent:
// re-applying the same spec to its own output is a no-op.
func FilterView(v domain.View, spec Spec) domain.View {
	locations := asSet(spec.Locations)
	issueTypes := asSet(spec.IssueTypes)
	statuses := asSet(spec.Statuses)
	priorities := asSet(spec.Priorities)
	assignees := asSet(spec.Assignees)

	matched := make([]*domain.TicketRecord, 0, len(v.Records))
	for _, record := range v.Records {
		if !inRange(record.Created, spec.CreatedFrom, spec.CreatedTo) {
			continue
		}
		if !member(locations, record.Location) {
			continue
		}
		if !member(issueTypes, record.IssueType) {
			continue
		}
		if !member(statuses, record.Status) {
			continue
		}
		if !member(priorities, record.Priority) {
			continue
		}
		if !member(assignees, record.Assignee) {
			continue
		}
		matched = append(matched, record)
	}
	return domain.View{Records: matched}
}

func asSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, value := range values {
		set[value] = true
	}
	return set
}

func member(set map[string]bool, value *string) bool {
	if set == nil {
		return true
	}
	if value == nil {
		return false
	}
	return set[*value]
}

// inRange checks an inclusive [from, to] window. Records without a Created
// timestamp cannot satisfy a date constraint and are excluded when one is
// set.
func inRange(ts, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if ts == nil {
		return false
	}
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(*to) {
		return false
	}
	return true
}
