package intake

import (
	"context"
	"strconv"
	"strings"

	"standards-board-backend/internal/model"
)

// Listing defaults
const (
	DefaultListLimit = 50
	StatusFilterAll  = "all"
)

// ListQuery selects a page of applications
type ListQuery struct {
	Limit    int
	Offset   int
	Position string
	Status   string
}

// Pagination describes the returned page within the filtered set
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Stats counts applications per status
type Stats struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Reviewed    int `json:"reviewed"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
}

func (st *Stats) add(status string) {
	st.Total++
	switch status {
	case model.ApplicationStatusPending:
		st.Pending++
	case model.ApplicationStatusReviewed:
		st.Reviewed++
	case model.ApplicationStatusShortlisted:
		st.Shortlisted++
	case model.ApplicationStatusRejected:
		st.Rejected++
	}
}

// ListResult is one page plus the aggregate counts
type ListResult struct {
	Applications []model.Application `json:"applications"`
	Pagination   Pagination          `json:"pagination"`
	Stats        Stats               `json:"stats"`
}

// ParseListQuery reads the raw query parameters of the admin listing.
// Empty limit and offset take their defaults.
func ParseListQuery(limit, offset, position, status string) (ListQuery, error) {
	q := ListQuery{
		Limit:    DefaultListLimit,
		Position: strings.TrimSpace(position),
		Status:   strings.TrimSpace(status),
	}
	fields := map[string]string{}

	if limit = strings.TrimSpace(limit); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			fields["limit"] = "limit must be a positive integer"
		}
		q.Limit = n
	}
	if offset = strings.TrimSpace(offset); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			fields["offset"] = "offset must be a non-negative integer"
		}
		q.Offset = n
	}
	if q.Status != "" && q.Status != StatusFilterAll && !model.IsValidStatus(q.Status) {
		fields["status"] = "status must be one of all, pending, reviewed, shortlisted, rejected"
	}

	if len(fields) > 0 {
		return ListQuery{}, invalid("Invalid query parameters", fields)
	}
	return q, nil
}

// ListApplications returns the filtered, paginated applications, newest first.
// Stats cover every application matching the position filter, regardless of the status filter.
func (s *Service) ListApplications(ctx context.Context, actor model.User, q ListQuery) (ListResult, error) {
	if !actor.IsAdmin() {
		return ListResult{}, ErrForbidden
	}
	if q.Limit <= 0 {
		q.Limit = DefaultListLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	var all []model.Application
	if err := s.DB.WithContext(ctx).Order("submitted_at DESC").Find(&all).Error; err != nil {
		return ListResult{}, err
	}

	var stats Stats
	filtered := make([]model.Application, 0, len(all))
	for i := range all {
		app := &all[i]
		if q.Position != "" && !app.AppliedTo(q.Position) {
			continue
		}
		stats.add(app.Status)

		if q.Status != "" && q.Status != StatusFilterAll && app.Status != q.Status {
			continue
		}
		filtered = append(filtered, *app)
	}

	total := len(filtered)
	start := min(q.Offset, total)
	end := start + min(q.Limit, total-start)

	return ListResult{
		Applications: filtered[start:end],
		Pagination: Pagination{
			Total:   total,
			Limit:   q.Limit,
			Offset:  q.Offset,
			HasMore: end < total,
		},
		Stats: stats,
	}, nil
}
