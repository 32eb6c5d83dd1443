package attendance_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fieldpoint/academy/internal/attendance"
	"github.com/fieldpoint/academy/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (attendance.AttendanceStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := attendance.New(db)
	return store, db, dbTeardown
}

func seedTeam(t *testing.T, db *sql.DB, id, name string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO teams (id, name, created_at) VALUES (?, ?, 0)`, id, name)
	require.NoError(t, err)
}

func seedPlayer(t *testing.T, db *sql.DB, id, firstName, lastName string, teamID *string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO players (id, first_name, last_name, dob, team_id, created_at)
		VALUES (?, ?, ?, '2012-01-01', ?, 0)`, id, firstName, lastName, teamID)
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestSaveDay_ReplacesRecordsForDate(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedTeam(t, db, "t1", "U12 Red")
	seedPlayer(t, db, "a", "Anna", "Able", strPtr("t1"))
	seedPlayer(t, db, "b", "Ben", "Baker", strPtr("t1"))
	seedPlayer(t, db, "c", "Cara", "Cole", nil)

	err := store.SaveDay("2024-05-01", []attendance.Entry{
		{PlayerID: "a", Points: 3},
		{PlayerID: "b", Points: 1},
	}, "coach1")
	require.NoError(t, err)

	records, err := store.RecordsForDate("2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Second save fully replaces the first: no leftover, no duplicates.
	err = store.SaveDay("2024-05-01", []attendance.Entry{
		{PlayerID: "a", Points: 5},
		{PlayerID: "c", Points: 2},
	}, "coach1")
	require.NoError(t, err)

	records, err = store.RecordsForDate("2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 2)

	byPlayer := make(map[string]attendance.Record)
	for _, r := range records {
		byPlayer[r.PlayerID] = r
	}
	assert.NotContains(t, byPlayer, "b", "removed player's prior record should be gone")
	assert.Equal(t, 5, byPlayer["a"].Points)
	assert.Equal(t, 2, byPlayer["c"].Points)
}

func TestSaveDay_EndToEndScenario(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedTeam(t, db, "T", "Tigers")
	seedPlayer(t, db, "A", "Alice", "Adams", strPtr("T"))
	seedPlayer(t, db, "B", "Bob", "Brown", strPtr("T"))

	err := store.SaveDay("2024-05-01", []attendance.Entry{
		{PlayerID: "A", Points: 3},
		{PlayerID: "B", Points: 1},
	}, "u1")
	require.NoError(t, err)

	records, err := store.RecordsForDate("2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		require.NotNil(t, r.TeamID)
		assert.Equal(t, "T", *r.TeamID, "team id should be snapshotted from the player's team")
		assert.Equal(t, "Tigers", r.TeamName)
		assert.Equal(t, "u1", r.UpdatedByUserID)
	}

	err = store.SaveDay("2024-05-01", []attendance.Entry{{PlayerID: "A", Points: 5}}, "u1")
	require.NoError(t, err)

	records, err = store.RecordsForDate("2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].PlayerID)
	assert.Equal(t, 5, records[0].Points)
}

func TestSaveDay_ClampsNegativePoints(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedPlayer(t, db, "p1", "Pat", "Price", nil)

	err := store.SaveDay("2024-06-10", []attendance.Entry{{PlayerID: "p1", Points: -5}}, "u1")
	require.NoError(t, err)

	records, err := store.RecordsForDate("2024-06-10")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].Points)
}

func TestSaveDay_ValidationBeforeWrite(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedPlayer(t, db, "p1", "Pat", "Price", nil)
	require.NoError(t, store.SaveDay("2024-06-10", []attendance.Entry{{PlayerID: "p1", Points: 2}}, "u1"))

	t.Run("rejects bad date", func(t *testing.T) {
		err := store.SaveDay("10-06-2024", nil, "u1")
		assert.ErrorIs(t, err, attendance.ErrValidation)
	})

	t.Run("rejects missing actor", func(t *testing.T) {
		err := store.SaveDay("2024-06-11", nil, "")
		assert.ErrorIs(t, err, attendance.ErrValidation)
	})

	t.Run("unknown player leaves prior records intact", func(t *testing.T) {
		err := store.SaveDay("2024-06-10", []attendance.Entry{
			{PlayerID: "p1", Points: 9},
			{PlayerID: "ghost", Points: 1},
		}, "u1")
		require.ErrorIs(t, err, attendance.ErrValidation)

		records, err := store.RecordsForDate("2024-06-10")
		require.NoError(t, err)
		require.Len(t, records, 1, "failed save must not leave a partial mix")
		assert.Equal(t, 2, records[0].Points)
	})
}

func TestSaveDay_EmptyEntriesClearsDate(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedPlayer(t, db, "p1", "Pat", "Price", nil)
	require.NoError(t, store.SaveDay("2024-06-10", []attendance.Entry{{PlayerID: "p1", Points: 2}}, "u1"))
	require.NoError(t, store.SaveDay("2024-06-10", nil, "u1"))

	records, err := store.RecordsForDate("2024-06-10")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSubmissionSummary(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedTeam(t, db, "t1", "U12 Red")
	seedTeam(t, db, "t2", "U14 Blue")
	seedPlayer(t, db, "a", "Anna", "Able", strPtr("t1"))
	seedPlayer(t, db, "b", "Ben", "Baker", strPtr("t1"))
	seedPlayer(t, db, "c", "Cara", "Cole", strPtr("t2"))
	seedPlayer(t, db, "d", "Dan", "Dyer", nil)

	require.NoError(t, store.SaveDay("2024-05-01", []attendance.Entry{
		{PlayerID: "a", Points: 1},
		{PlayerID: "b", Points: 1},
		{PlayerID: "c", Points: 1},
		{PlayerID: "d", Points: 1},
	}, "u1"))
	require.NoError(t, store.SaveDay("2024-05-03", []attendance.Entry{
		{PlayerID: "a", Points: 1},
	}, "u1"))

	summary, err := store.SubmissionSummary("2024-05-01", "2024-05-31")
	require.NoError(t, err)

	require.Len(t, summary, 2)
	assert.NotContains(t, summary, "2024-05-02", "dates with zero records are absent, not zero-count")

	first := summary["2024-05-01"]
	require.Len(t, first, 3)
	// Sorted by team name: "No team" < "U12 Red" < "U14 Blue".
	assert.Equal(t, "No team", first[0].TeamName)
	assert.Nil(t, first[0].TeamID)
	assert.Equal(t, 1, first[0].Count)
	assert.Equal(t, "U12 Red", first[1].TeamName)
	assert.Equal(t, 2, first[1].Count)
	assert.Equal(t, "U14 Blue", first[2].TeamName)
	assert.Equal(t, 1, first[2].Count)

	require.Len(t, summary["2024-05-03"], 1)
	assert.Equal(t, 1, summary["2024-05-03"][0].Count)
}

func TestSubmissionSummary_DeletedTeamRendersUnknown(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedTeam(t, db, "t1", "U12 Red")
	seedPlayer(t, db, "a", "Anna", "Able", strPtr("t1"))
	require.NoError(t, store.SaveDay("2024-05-01", []attendance.Entry{{PlayerID: "a", Points: 1}}, "u1"))

	// Deleting the team keeps the snapshotted team id on the record.
	_, err := db.Exec("DELETE FROM teams WHERE id = 't1'")
	require.NoError(t, err)

	summary, err := store.SubmissionSummary("2024-05-01", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, summary["2024-05-01"], 1)
	assert.Equal(t, "Unknown", summary["2024-05-01"][0].TeamName)
}

func TestAnalytics(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedTeam(t, db, "t1", "U12 Red")
	seedPlayer(t, db, "a", "Anna", "Able", strPtr("t1"))
	seedPlayer(t, db, "b", "Ben", "Baker", nil)

	require.NoError(t, store.SaveDay("2024-05-01", []attendance.Entry{
		{PlayerID: "a", Points: 3},
		{PlayerID: "b", Points: 2},
	}, "u1"))
	require.NoError(t, store.SaveDay("2024-05-02", []attendance.Entry{
		{PlayerID: "a", Points: 2},
	}, "u1"))
	require.NoError(t, store.SaveDay("2024-05-10", []attendance.Entry{
		{PlayerID: "b", Points: 4},
	}, "u1"))

	t.Run("unbounded", func(t *testing.T) {
		report, err := store.Analytics(attendance.Filter{})
		require.NoError(t, err)

		require.Len(t, report.Players, 2)
		assert.Equal(t, "b", report.Players[0].PlayerID)
		assert.Equal(t, 6, report.Players[0].TotalPoints)
		assert.Equal(t, 2, report.Players[0].AttendanceCount)
		assert.Equal(t, "a", report.Players[1].PlayerID)
		assert.Equal(t, 5, report.Players[1].TotalPoints)

		require.Len(t, report.Teams, 2)
		assert.Equal(t, "No Team", report.Teams[0].TeamName)
		assert.Equal(t, 6, report.Teams[0].TotalPoints)
		assert.Equal(t, 1, report.Teams[0].PlayerCount)
		assert.Equal(t, "U12 Red", report.Teams[1].TeamName)
		assert.Equal(t, 5, report.Teams[1].TotalPoints)
		assert.Equal(t, 1, report.Teams[1].PlayerCount)
	})

	t.Run("date range filter", func(t *testing.T) {
		report, err := store.Analytics(attendance.Filter{DateFrom: "2024-05-01", DateTo: "2024-05-02"})
		require.NoError(t, err)
		require.Len(t, report.Players, 2)
		assert.Equal(t, "a", report.Players[0].PlayerID)
		assert.Equal(t, 5, report.Players[0].TotalPoints)
		assert.Equal(t, "b", report.Players[1].PlayerID)
		assert.Equal(t, 2, report.Players[1].TotalPoints)
	})

	t.Run("team filter", func(t *testing.T) {
		report, err := store.Analytics(attendance.Filter{TeamID: "t1"})
		require.NoError(t, err)
		require.Len(t, report.Players, 1)
		assert.Equal(t, "a", report.Players[0].PlayerID)
		require.Len(t, report.Teams, 1)
		assert.Equal(t, "U12 Red", report.Teams[0].TeamName)
	})

	t.Run("empty record set degrades to empty report", func(t *testing.T) {
		report, err := store.Analytics(attendance.Filter{DateFrom: "2030-01-01"})
		require.NoError(t, err)
		assert.Empty(t, report.Players)
		assert.Empty(t, report.Teams)
	})
}

func TestAnalytics_DistinctPlayerCount(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedTeam(t, db, "t1", "U12 Red")
	seedPlayer(t, db, "a", "Anna", "Able", strPtr("t1"))

	dates := []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04", "2024-05-05"}
	for i, date := range dates {
		require.NoError(t, store.SaveDay(date, []attendance.Entry{{PlayerID: "a", Points: i + 1}}, "u1"))
	}

	report, err := store.Analytics(attendance.Filter{})
	require.NoError(t, err)
	require.Len(t, report.Teams, 1)
	assert.Equal(t, 1, report.Teams[0].PlayerCount, "five records by one player count as one player")
	assert.Equal(t, 1+2+3+4+5, report.Teams[0].TotalPoints)
}

func TestPlayerSummary(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	seedPlayer(t, db, "p1", "Pat", "Price", nil)
	now := time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

	t.Run("zero records", func(t *testing.T) {
		summary, err := store.PlayerSummary("p1", now)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Last30DaysTotalSessions)
		assert.Equal(t, 0, summary.Last30DaysAttendancePct, "empty window must yield 0, not an error")
		assert.Nil(t, summary.LastAttendanceDate)
	})

	t.Run("seventy percent", func(t *testing.T) {
		// 10 sessions in the window, 7 attended.
		for i := 0; i < 10; i++ {
			date := now.AddDate(0, 0, -i).Format("2006-01-02")
			points := 0
			if i < 7 {
				points = 1
			}
			require.NoError(t, store.SaveDay(date, []attendance.Entry{{PlayerID: "p1", Points: points}}, "u1"))
		}

		summary, err := store.PlayerSummary("p1", now)
		require.NoError(t, err)
		assert.Equal(t, 10, summary.Last30DaysTotalSessions)
		assert.Equal(t, 7, summary.Last30DaysAttendedSessions)
		assert.Equal(t, 70, summary.Last30DaysAttendancePct)
		require.NotNil(t, summary.LastAttendanceDate)
		assert.Equal(t, "2024-06-30", *summary.LastAttendanceDate)
	})

	t.Run("last attendance date spans all time", func(t *testing.T) {
		// A record far outside the window must not count toward the window
		// but still cannot beat a newer date; conversely a future-dated record
		// outside the window still wins the all-time max.
		require.NoError(t, store.SaveDay("2024-08-15", []attendance.Entry{{PlayerID: "p1", Points: 1}}, "u1"))

		summary, err := store.PlayerSummary("p1", now)
		require.NoError(t, err)
		assert.Equal(t, 10, summary.Last30DaysTotalSessions, "out-of-window record is excluded from the window")
		require.NotNil(t, summary.LastAttendanceDate)
		assert.Equal(t, "2024-08-15", *summary.LastAttendanceDate)
	})
}
