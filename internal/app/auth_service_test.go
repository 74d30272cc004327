package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitterclone/internal/pkg/jwtutil"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	_, r := setupTestDB(t)
	svc := NewAuthService(r.user, testSecret)

	err := svc.Register(RegisterInput{
		Username: "alice",
		Password: "hunter22",
		Name:     "Alice",
		Gender:   "female",
	})
	require.NoError(t, err)

	token, err := svc.Login(LoginInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	claims, err := jwtutil.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	_, r := setupTestDB(t)
	svc := NewAuthService(r.user, testSecret)

	require.NoError(t, svc.Register(RegisterInput{Username: "alice", Password: "hunter22"}))

	err := svc.Register(RegisterInput{Username: "alice", Password: "different-pass", Name: "Other"})
	assert.ErrorIs(t, err, ErrUserExists)

	// Uniqueness is checked before password policy: a taken username wins
	// even when the password is also too short.
	err = svc.Register(RegisterInput{Username: "alice", Password: "abc"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthService_RegisterShortPassword(t *testing.T) {
	_, r := setupTestDB(t)
	svc := NewAuthService(r.user, testSecret)

	err := svc.Register(RegisterInput{Username: "bob", Password: "abc12"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// Nothing was inserted.
	user, err := r.user.GetByUsername("bob")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthService_LoginFailures(t *testing.T) {
	_, r := setupTestDB(t)
	svc := NewAuthService(r.user, testSecret)

	require.NoError(t, svc.Register(RegisterInput{Username: "alice", Password: "hunter22"}))

	_, err := svc.Login(LoginInput{Username: "nobody", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_PasswordStoredHashed(t *testing.T) {
	_, r := setupTestDB(t)
	svc := NewAuthService(r.user, testSecret)

	require.NoError(t, svc.Register(RegisterInput{Username: "alice", Password: "hunter22"}))

	user, err := r.user.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "hunter22", user.Password)
	assert.NotEmpty(t, user.Password)
}
