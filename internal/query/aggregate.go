package query

import (
	"fmt"
	"sort"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
)

// Dimension selects the record field a view is grouped by.
type Dimension string

const (
	DimensionIssueType   Dimension = "issue_type"
	DimensionAssignee    Dimension = "assignee"
	DimensionPriority    Dimension = "priority"
	DimensionStatus      Dimension = "status"
	DimensionLocation    Dimension = "location"
	DimensionCreatedDate Dimension = "created_date"
)

// UnknownKey is the group assigned to records whose dimension value is
// missing or empty.
const UnknownKey = "Unknown"

// DateBucketFormat renders a Created timestamp as its calendar-day group.
const DateBucketFormat = "2006-01-02"

// ParseDimension validates a dimension name from an API parameter.
func ParseDimension(name string) (Dimension, error) {
	switch d := Dimension(name); d {
	case DimensionIssueType, DimensionAssignee, DimensionPriority,
		DimensionStatus, DimensionLocation, DimensionCreatedDate:
		return d, nil
	}
	return "", fmt.Errorf("unknown dimension %q", name)
}

// Bucket is one group in an aggregation result.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Aggregate groups the view by the literal value of the chosen dimension and
// counts per group. Groups come back sorted by descending count, ties broken
// by ascending key, so equal inputs always produce equal output.
func Aggregate(v domain.View, dimension Dimension) []Bucket {
	counts := make(map[string]int)
	for _, record := range v.Records {
		counts[bucketKey(record, dimension)]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, Bucket{Key: key, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

// Timeline counts created tickets per calendar day in chronological order,
// for trend charts. Records without a Created timestamp carry no position on
// the axis and are skipped.
func Timeline(v domain.View) []Bucket {
	counts := make(map[string]int)
	for _, record := range v.Records {
		if record.Created == nil {
			continue
		}
		counts[record.Created.Format(DateBucketFormat)]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, Bucket{Key: key, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

func bucketKey(record *domain.TicketRecord, dimension Dimension) string {
	if dimension == DimensionCreatedDate {
		if record.Created == nil {
			return UnknownKey
		}
		return record.Created.Format(DateBucketFormat)
	}

	var value *string
	switch dimension {
	case DimensionIssueType:
		value = record.IssueType
	case DimensionAssignee:
		value = record.Assignee
	case DimensionPriority:
		value = record.Priority
	case DimensionStatus:
		value = record.Status
	case DimensionLocation:
		value = record.Location
	}
	if value == nil || *value == "" {
		return UnknownKey
	}
	return *value
}
