package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"users", "teams", "positions", "players", "attendance"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "the %q table should be created", table)
	}
}

func TestInitDB_AttendanceUniquePerPlayerAndDate(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO players (id, first_name, last_name, dob, created_at) VALUES ('p1', 'A', 'B', '2012-01-01', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO attendance (id, date, player_id, points, updated_by_user_id, created_at) VALUES ('a1', '2024-05-01', 'p1', 1, 'u1', 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO attendance (id, date, player_id, points, updated_by_user_id, created_at) VALUES ('a2', '2024-05-01', 'p1', 2, 'u1', 0)`)
	assert.Error(t, err, "a second record for the same (date, player) should violate the unique index")
}
