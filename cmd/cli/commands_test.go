package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDBConfig_NeedsOnlyDatabaseSettings(t *testing.T) {
	t.Setenv("DB_NAME", "academy.db")
	t.Setenv("TURSO_PRIMARY_URL", "")
	t.Setenv("TURSO_AUTH_TOKEN", "")
	// Server-only vars stay unset; bootstrap must not require them.
	t.Setenv("PORT", "")
	t.Setenv("AUTH_SIGNING_SECRET", "")

	dbName, primaryURL, authToken, err := loadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, "academy.db", dbName)
	assert.Empty(t, primaryURL)
	assert.Empty(t, authToken)
}

func TestLoadDBConfig_RequiresDBName(t *testing.T) {
	t.Setenv("DB_NAME", "")

	_, _, _, err := loadDBConfig()
	assert.Error(t, err)
}
