package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoii/goblog/models"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	created, err := users.Register("Ada", "ada@example.com", "enigma42")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.NotEqual(t, "enigma42", created.PasswordHash)

	got, err := users.Authenticate("ada@example.com", "enigma42")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestRegisterDuplicateEmailKeepsOriginal(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	first, err := users.Register("Ada", "ada@example.com", "enigma42")
	require.NoError(t, err)

	_, err = users.Register("Impostor", "ada@example.com", "other-pass")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "ada@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// the existing record is untouched
	kept, err := users.ByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", kept.Name)
	got, err := users.Authenticate("ada@example.com", "enigma42")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestRegisterEmailIsExactMatch(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	_, err := users.Register("Ada", "ada@example.com", "enigma42")
	require.NoError(t, err)

	// uniqueness is checked on the exact string, no normalization
	_, err = users.Register("Ada2", "Ada@Example.com", "enigma42")
	require.NoError(t, err)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	_, err := users.Authenticate("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	_, err := users.Register("Ada", "ada@example.com", "enigma42")
	require.NoError(t, err)

	_, err = users.Authenticate("ada@example.com", "enigma43")
	assert.ErrorIs(t, err, ErrBadPassword)
}
