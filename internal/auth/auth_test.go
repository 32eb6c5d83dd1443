package auth_test

import (
	"testing"

	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := auth.New("test-secret", 1)

	token, err := svc.IssueToken(roster.UserInfo{ID: "u1", Name: "Coach Carter", Role: roster.RoleCoach})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, "Coach Carter", claims.Name)
	assert.Equal(t, roster.RoleCoach, claims.Role)
}

func TestVerifyToken_RejectsWrongSecret(t *testing.T) {
	token, err := auth.New("secret-a", 1).IssueToken(roster.UserInfo{ID: "u1", Role: roster.RoleAdmin})
	require.NoError(t, err)

	_, err = auth.New("secret-b", 1).VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	_, err := auth.New("secret", 1).VerifyToken("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter2"))
	assert.False(t, auth.CheckPassword(hash, "hunter3"))
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, roster.RoleAdmin.CanEdit())
	assert.True(t, roster.RoleCoach.CanEdit())
	assert.False(t, roster.RoleVolunteer.CanEdit())
	assert.False(t, roster.Role("guest").Valid())
}
