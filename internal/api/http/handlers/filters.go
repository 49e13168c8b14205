package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/ingest"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/query"
	apperrors "github.com/SalahNassar0/IT-Tickets-Analysis/pkg/util"
)

// parseFilterSpec reads the shared filter query parameters. List parameters
// are comma-separated and matched literally against record values.
func parseFilterSpec(c *fiber.Ctx) (query.Spec, error) {
	spec := query.Spec{
		Locations:  splitList(c.Query("location")),
		IssueTypes: splitList(c.Query("issue_type")),
		Statuses:   splitList(c.Query("status")),
		Priorities: splitList(c.Query("priority")),
		Assignees:  splitList(c.Query("assignee")),
	}

	if raw := c.Query("created_from"); raw != "" {
		ts, err := ingest.ParseTimestamp(raw)
		if err != nil {
			return query.Spec{}, apperrors.NewValidationError("invalid created_from", map[string]any{"value": raw})
		}
		spec.CreatedFrom = &ts
	}
	if raw := c.Query("created_to"); raw != "" {
		ts, err := ingest.ParseTimestamp(raw)
		if err != nil {
			return query.Spec{}, apperrors.NewValidationError("invalid created_to", map[string]any{"value": raw})
		}
		spec.CreatedTo = &ts
	}
	return spec, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
