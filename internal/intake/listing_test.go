package intake

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standards-board-backend/internal/database"
	"standards-board-backend/internal/model"
)

func seedListing(t *testing.T, db *database.DBinstanceStruct) {
	t.Helper()
	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	rows := []struct {
		reg       string
		status    string
		positions []string
	}{
		{"21BCE0001", model.ApplicationStatusShortlisted, []string{"lead"}},
		{"21BCE0002", model.ApplicationStatusPending, []string{"lead", "design-head"}},
		{"21BCE0003", model.ApplicationStatusShortlisted, []string{"design-head"}},
		{"21BCE0004", model.ApplicationStatusRejected, []string{"lead"}},
		{"21BCE0005", model.ApplicationStatusShortlisted, []string{"lead"}},
		{"21BCE0006", model.ApplicationStatusReviewed, []string{"design-head"}},
	}
	for i, r := range rows {
		insertApplication(t, db, r.reg, r.status, base.Add(time.Duration(i)*time.Hour), r.positions...)
	}
}

func ids(apps []model.Application) []string {
	out := make([]string, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}

func TestListApplications_StatusFilter(t *testing.T) {
	svc, _, db := setup(t)
	seedListing(t, db)

	res, err := svc.ListApplications(context.Background(), database.TestAdminUser, ListQuery{Status: "shortlisted", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"21BCE0005", "21BCE0003", "21BCE0001"}, ids(res.Applications))
	assert.Equal(t, Pagination{Total: 3, Limit: 10, Offset: 0, HasMore: false}, res.Pagination)
	// stats ignore the status filter
	assert.Equal(t, Stats{Total: 6, Pending: 1, Reviewed: 1, Shortlisted: 3, Rejected: 1}, res.Stats)
}

func TestListApplications_PositionFilterScopesStats(t *testing.T) {
	svc, _, db := setup(t)
	seedListing(t, db)

	res, err := svc.ListApplications(context.Background(), database.TestAdminUser, ListQuery{Position: "design-head", Status: StatusFilterAll})
	require.NoError(t, err)

	assert.Equal(t, []string{"21BCE0006", "21BCE0003", "21BCE0002"}, ids(res.Applications))
	assert.Equal(t, 3, res.Pagination.Total)
	assert.Equal(t, DefaultListLimit, res.Pagination.Limit)
	assert.Equal(t, Stats{Total: 3, Pending: 1, Reviewed: 1, Shortlisted: 1}, res.Stats)
}

func TestListApplications_Pagination(t *testing.T) {
	svc, _, db := setup(t)
	seedListing(t, db)
	ctx := context.Background()

	res, err := svc.ListApplications(ctx, database.TestAdminUser, ListQuery{Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"21BCE0006", "21BCE0005", "21BCE0004", "21BCE0003"}, ids(res.Applications))
	assert.True(t, res.Pagination.HasMore)
	assert.Equal(t, 6, res.Pagination.Total)

	res, err = svc.ListApplications(ctx, database.TestAdminUser, ListQuery{Limit: 4, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"21BCE0002", "21BCE0001"}, ids(res.Applications))
	assert.False(t, res.Pagination.HasMore)

	res, err = svc.ListApplications(ctx, database.TestAdminUser, ListQuery{Limit: 4, Offset: 40})
	require.NoError(t, err)
	assert.Empty(t, res.Applications)
	assert.NotNil(t, res.Applications)
	assert.Equal(t, 6, res.Pagination.Total)
	assert.Equal(t, 6, res.Stats.Total)
}

func TestListApplications_HugeLimit(t *testing.T) {
	svc, _, db := setup(t)
	seedListing(t, db)

	q, err := ParseListQuery(strconv.Itoa(math.MaxInt), "1", "", "")
	require.NoError(t, err)

	res, err := svc.ListApplications(context.Background(), database.TestAdminUser, q)
	require.NoError(t, err)
	assert.Len(t, res.Applications, 5)
	assert.False(t, res.Pagination.HasMore)
	assert.Equal(t, math.MaxInt, res.Pagination.Limit)
}

func TestListApplications_RequiresAdmin(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.ListApplications(context.Background(), database.TestApplicant1, ListQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestParseListQuery(t *testing.T) {
	q, err := ParseListQuery("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, ListQuery{Limit: DefaultListLimit}, q)

	q, err = ParseListQuery("10", "20", " lead ", "shortlisted")
	require.NoError(t, err)
	assert.Equal(t, ListQuery{Limit: 10, Offset: 20, Position: "lead", Status: "shortlisted"}, q)

	_, err = ParseListQuery("0", "-1", "", "accepted")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "limit")
	assert.Contains(t, verr.Fields, "offset")
	assert.Contains(t, verr.Fields, "status")

	_, err = ParseListQuery("ten", "", "", "all")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
