package api

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vainnor/training-records/db/dbtest"
	"github.com/vainnor/training-records/types"
)

func TestReport_Empty(t *testing.T) {
	srv := newTestServer(t, dbtest.NewStore(t))

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/training_sessions/report", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "No sessions match the given criteria", body["message"])
	assert.Equal(t, []any{}, body["sessions"])

	stats := body["statistics"].(map[string]any)
	assert.Contains(t, stats, "average_duration")
	assert.Nil(t, stats["average_duration"])
	assert.Contains(t, stats, "average_attendance")
	assert.Nil(t, stats["average_attendance"])
	assert.EqualValues(t, 0, stats["total_sessions"])
}

func TestReport_Statistics(t *testing.T) {
	store := dbtest.NewStore(t)

	john, jane := dbtest.Employee("John Doe"), dbtest.Employee("Jane Roe")
	a1, a2, b1 := dbtest.RSVP("attending"), dbtest.RSVP("attending"), dbtest.RSVP("declined")
	alice := dbtest.Trainer("Alice Smith")
	bob := dbtest.Trainer("Bob Jones")
	dbtest.Load(t, store,
		alice.With(
			dbtest.Session("2024-01-05", dbtest.Minutes(30)).With(a1, a2),
			dbtest.Session("2024-02-05", nil).With(b1),
		),
		bob.With(
			dbtest.Session("2024-03-05", dbtest.Minutes(90)),
		),
		john.With(a1, b1),
		jane.With(a2),
	)
	srv := newTestServer(t, store)

	report := func(t *testing.T, query url.Values) map[string]any {
		t.Helper()
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/training_sessions/report?"+query.Encode(), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return body
	}

	t.Run("unfiltered", func(t *testing.T) {
		body := report(t, url.Values{})
		assert.NotContains(t, body, "message")

		sessions := body["sessions"].([]any)
		require.Len(t, sessions, 3)
		first := sessions[0].(map[string]any)
		assert.Equal(t, "2024-01-05", first["date"])
		assert.Equal(t, "Alice Smith", first["trainer"])
		assert.NotContains(t, first, "trainer_id")
		assert.NotContains(t, first, "certification_id")

		stats := body["statistics"].(map[string]any)
		assert.InDelta(t, 60.0, stats["average_duration"], 0.0001)
		assert.InDelta(t, 2.0, stats["average_attendance"], 0.0001)
		assert.EqualValues(t, 3, stats["total_sessions"])
	})

	t.Run("frontend placeholders are ignored", func(t *testing.T) {
		body := report(t, url.Values{
			"trainer_id":       {"null"},
			"certification_id": {""},
			"start_date":       {""},
		})
		stats := body["statistics"].(map[string]any)
		assert.EqualValues(t, 3, stats["total_sessions"])
	})

	t.Run("trainer and date range", func(t *testing.T) {
		body := report(t, url.Values{
			"trainer_id": {strconv.FormatInt(bob.Value().ID, 10)},
			"start_date": {"2024-03-01"},
			"end_date":   {"2024-03-05"},
		})
		sessions := body["sessions"].([]any)
		require.Len(t, sessions, 1)

		stats := body["statistics"].(map[string]any)
		assert.InDelta(t, 90.0, stats["average_duration"], 0.0001)
		// Attendance is computed over every session unless scoped.
		assert.InDelta(t, 2.0, stats["average_attendance"], 0.0001)
		assert.EqualValues(t, 1, stats["total_sessions"])
	})

	t.Run("filtered attendance scope", func(t *testing.T) {
		body := report(t, url.Values{
			"trainer_id":       {strconv.FormatInt(bob.Value().ID, 10)},
			"attendance_scope": {"filtered"},
		})
		stats := body["statistics"].(map[string]any)
		assert.Nil(t, stats["average_attendance"])
	})

	t.Run("no match", func(t *testing.T) {
		body := report(t, url.Values{"start_date": {"2030-01-01"}})
		assert.Equal(t, "No sessions match the given criteria", body["message"])
		stats := body["statistics"].(map[string]any)
		assert.EqualValues(t, 0, stats["total_sessions"])
		assert.Nil(t, stats["average_duration"])
	})
}

func TestReport_BadQuery(t *testing.T) {
	srv := newTestServer(t, dbtest.NewStore(t))

	for _, query := range []string{"start_date=yesterday", "end_date=2024-13-01", "attendance_scope=some"} {
		t.Run(query, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/training_sessions/report?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "validation_failed", body["code"])
		})
	}
}

func TestParseReportFilter(t *testing.T) {
	filter, err := parseReportFilter(url.Values{
		"start_date":       {"2024-01-01"},
		"trainer_id":       {"4"},
		"certification_id": {"0"},
	})
	require.NoError(t, err)
	require.NotNil(t, filter.StartDate)
	assert.Equal(t, "2024-01-01", filter.StartDate.String())
	assert.Nil(t, filter.EndDate)
	require.NotNil(t, filter.TrainerID)
	assert.EqualValues(t, 4, *filter.TrainerID)
	assert.Nil(t, filter.CertificationID)
	assert.Equal(t, types.AttendanceScopeAll, filter.AttendanceScope)

	filter, err = parseReportFilter(url.Values{"trainer_id": {"abc"}})
	require.NoError(t, err)
	assert.Nil(t, filter.TrainerID)
}
