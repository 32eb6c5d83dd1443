package snapshot_test

import (
	"testing"

	"github.com/fieldpoint/academy/internal/attendance"
	"github.com/fieldpoint/academy/internal/database"
	"github.com/fieldpoint/academy/internal/roster"
	"github.com/fieldpoint/academy/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, srcTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer srcTeardown()

	srcRoster := roster.New(src)
	team, err := srcRoster.CreateTeam(roster.Team{Name: "U12 Red"})
	require.NoError(t, err)
	player, err := srcRoster.CreatePlayer(roster.Player{
		FirstName: "Anna", LastName: "Able", DOB: "2012-04-01", TeamID: &team.ID,
		Positions: []string{"GK"},
	})
	require.NoError(t, err)
	user, err := srcRoster.CreateUser(roster.UserInfo{Name: "Admin", Email: "admin@example.com", Role: roster.RoleAdmin}, "hash")
	require.NoError(t, err)

	srcAttendance := attendance.New(src)
	require.NoError(t, srcAttendance.SaveDay("2024-05-01", []attendance.Entry{{PlayerID: player.ID, Points: 3}}, user.ID))

	data, err := snapshot.Export(src)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Restore into a fresh database.
	dst, dstTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer dstTeardown()

	require.NoError(t, snapshot.Import(dst, data))

	dstRoster := roster.New(dst)
	players, err := dstRoster.ListPlayers(roster.PlayerFilter{})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, player.ID, players[0].ID)
	assert.Equal(t, []string{"GK"}, players[0].Positions)
	require.NotNil(t, players[0].TeamName)
	assert.Equal(t, "U12 Red", *players[0].TeamName)

	records, err := attendance.New(dst).RecordsForDate("2024-05-01")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Points)

	// Password hashes survive so restored users can still sign in.
	_, hash, err := dstRoster.GetUserByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", hash)
}

func TestImport_RejectsGarbage(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	assert.Error(t, snapshot.Import(db, []byte("not msgpack")))
}

func TestImport_ReplacesExistingData(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	store := roster.New(db)
	_, err = store.CreatePlayer(roster.Player{FirstName: "Old", LastName: "Player", DOB: "2010-01-01"})
	require.NoError(t, err)

	// Import an empty snapshot taken from a fresh database.
	empty, emptyTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer emptyTeardown()
	data, err := snapshot.Export(empty)
	require.NoError(t, err)

	require.NoError(t, snapshot.Import(db, data))

	players, err := store.ListPlayers(roster.PlayerFilter{})
	require.NoError(t, err)
	assert.Empty(t, players)
}
