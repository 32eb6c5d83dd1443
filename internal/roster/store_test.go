package roster_test

import (
	"database/sql"
	"testing"

	"github.com/fieldpoint/academy/internal/database"
	"github.com/fieldpoint/academy/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (roster.RosterStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	return store, db, dbTeardown
}

func strPtr(s string) *string { return &s }

func TestUserLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	created, err := store.CreateUser(roster.UserInfo{
		Name:  "Alice Admin",
		Email: "alice@example.com",
		Role:  roster.RoleAdmin,
	}, "hashed-password")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Admin", got.Name)
	assert.Equal(t, roster.RoleAdmin, got.Role)

	// Email lookup is case-insensitive and returns the stored hash.
	byEmail, hash, err := store.GetUserByEmail("ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hashed-password", hash)

	got.Name = "Alice A."
	got.Role = roster.RoleCoach
	require.NoError(t, store.UpdateUser(*got))

	updated, err := store.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", updated.Name)
	assert.Equal(t, roster.RoleCoach, updated.Role)

	require.NoError(t, store.DeleteUser(created.ID))
	_, err = store.GetUser(created.ID)
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.CreateUser(roster.UserInfo{Name: "A", Email: "dup@example.com", Role: roster.RoleCoach}, "h1")
	require.NoError(t, err)

	_, err = store.CreateUser(roster.UserInfo{Name: "B", Email: "dup@example.com", Role: roster.RoleCoach}, "h2")
	assert.Error(t, err)
}

func TestUpdateUser_NotFound(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.UpdateUser(roster.UserInfo{ID: "nope", Name: "Ghost", Role: roster.RoleCoach})
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestPlayerLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team, err := store.CreateTeam(roster.Team{Name: "U12 Red"})
	require.NoError(t, err)

	created, err := store.CreatePlayer(roster.Player{
		FirstName:    "Ben",
		LastName:     "Baker",
		DOB:          "2012-03-14",
		Positions:    []string{"pos-gk", "pos-def"},
		TeamID:       &team.ID,
		MedicalNotes: strPtr("asthma"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, roster.InjuryNone, created.InjuryStatus)

	got, err := store.GetPlayer(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pos-gk", "pos-def"}, got.Positions)
	require.NotNil(t, got.TeamName)
	assert.Equal(t, "U12 Red", *got.TeamName)

	got.FirstName = "Benjamin"
	got.TeamID = nil
	got.InjuryStatus = roster.InjuryRehab
	require.NoError(t, store.UpdatePlayer(*got))

	updated, err := store.GetPlayer(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Benjamin", updated.FirstName)
	assert.Nil(t, updated.TeamID)
	assert.Nil(t, updated.TeamName)
	assert.Equal(t, roster.InjuryRehab, updated.InjuryStatus)

	require.NoError(t, store.DeletePlayer(created.ID))
	_, err = store.GetPlayer(created.ID)
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestListPlayers_Filters(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team, err := store.CreateTeam(roster.Team{Name: "U14 Blue"})
	require.NoError(t, err)

	_, err = store.CreatePlayer(roster.Player{FirstName: "Anna", LastName: "Able", DOB: "2010-01-01", TeamID: &team.ID})
	require.NoError(t, err)
	_, err = store.CreatePlayer(roster.Player{FirstName: "Ben", LastName: "Baker", DOB: "2010-01-01", TeamID: &team.ID})
	require.NoError(t, err)
	_, err = store.CreatePlayer(roster.Player{FirstName: "Cara", LastName: "Cole", DOB: "2010-01-01"})
	require.NoError(t, err)

	all, err := store.ListPlayers(roster.PlayerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ordered by last name.
	assert.Equal(t, "Able", all[0].LastName)
	assert.Equal(t, "Cole", all[2].LastName)

	byTeam, err := store.ListPlayers(roster.PlayerFilter{TeamID: &team.ID})
	require.NoError(t, err)
	assert.Len(t, byTeam, 2)

	bySearch, err := store.ListPlayers(roster.PlayerFilter{Search: "car"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Cara", bySearch[0].FirstName)

	both, err := store.ListPlayers(roster.PlayerFilter{TeamID: &team.ID, Search: "ben"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Ben", both[0].FirstName)
}

func TestTeamLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	coach, err := store.CreateUser(roster.UserInfo{Name: "Coach", Email: "coach@example.com", Role: roster.RoleCoach}, "h")
	require.NoError(t, err)

	created, err := store.CreateTeam(roster.Team{
		Name:        "U12 Red",
		MainCoachID: &coach.ID,
		CoachIDs:    []string{coach.ID},
	})
	require.NoError(t, err)

	_, err = store.CreatePlayer(roster.Player{FirstName: "Anna", LastName: "Able", DOB: "2012-01-01", TeamID: &created.ID})
	require.NoError(t, err)

	got, err := store.GetTeam(created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{coach.ID}, got.CoachIDs)
	assert.Equal(t, []string{}, got.VolunteerIDs)
	assert.Equal(t, 1, got.PlayerCount)

	got.Name = "U12 Crimson"
	got.Notes = strPtr("training moved to tuesdays")
	require.NoError(t, store.UpdateTeam(*got))

	teams, err := store.ListTeams()
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "U12 Crimson", teams[0].Name)
}

func TestDeleteTeam_OrphansPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team, err := store.CreateTeam(roster.Team{Name: "U12 Red"})
	require.NoError(t, err)
	player, err := store.CreatePlayer(roster.Player{FirstName: "Anna", LastName: "Able", DOB: "2012-01-01", TeamID: &team.ID})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTeam(team.ID))

	got, err := store.GetPlayer(player.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TeamID)
}

func TestPositions_OrderedBySortOrder(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.CreatePosition(roster.Position{Name: "Striker", SortOrder: 3})
	require.NoError(t, err)
	_, err = store.CreatePosition(roster.Position{Name: "Goalkeeper", SortOrder: 1})
	require.NoError(t, err)
	_, err = store.CreatePosition(roster.Position{Name: "Defender", SortOrder: 2})
	require.NoError(t, err)

	positions, err := store.ListPositions()
	require.NoError(t, err)
	require.Len(t, positions, 3)
	assert.Equal(t, "Goalkeeper", positions[0].Name)
	assert.Equal(t, "Defender", positions[1].Name)
	assert.Equal(t, "Striker", positions[2].Name)
}

func TestRedact(t *testing.T) {
	p := roster.Player{
		FirstName:     "Anna",
		MedicalNotes:  strPtr("asthma"),
		GuardianName:  strPtr("Pat Able"),
		GuardianPhone: strPtr("555-0100"),
		ContactNumber: strPtr("555-0101"),
		Strengths:     strPtr("speed"),
	}
	p.Redact()

	assert.Nil(t, p.MedicalNotes)
	assert.Nil(t, p.GuardianName)
	assert.Nil(t, p.GuardianPhone)
	assert.Nil(t, p.ContactNumber)
	// Non-sensitive fields survive.
	assert.Equal(t, "Anna", p.FirstName)
	assert.NotNil(t, p.Strengths)
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.CreateUser(roster.UserInfo{Name: "A", Email: "a@example.com", Role: roster.RoleAdmin}, "h")
	require.NoError(t, err)
	_, err = store.CreateTeam(roster.Team{Name: "U12 Red"})
	require.NoError(t, err)
	_, err = store.CreatePlayer(roster.Player{FirstName: "Anna", LastName: "Able", DOB: "2012-01-01"})
	require.NoError(t, err)

	store.Clear()

	for _, table := range []string{"users", "teams", "players", "attendance"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}
