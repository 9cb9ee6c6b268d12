package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/testhelpers"
)

func TestSignup(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "alice", "password123")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "alice", "otherpassword")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignupValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "", "password123")
	assert.True(t, IsValidation(err))

	_, _, err = svc.Signup(ctx, "alice", "")
	assert.True(t, IsValidation(err))
}

func TestLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	created, _, err := svc.Signup(ctx, "bob", "hunter22")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "bob", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginBadCredentials(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "bob", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenExpired(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, "carol", "password123")
	require.NoError(t, err)

	// Issue a token in the past so it is already expired at validation time.
	issued := time.Now().Add(-2 * time.Hour)
	svc.WithClock(func() time.Time { return issued })
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	svc.WithClock(time.Now)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenTampered(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "dave", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signed with a different secret.
	other := NewAuthService(db, "other-secret", time.Hour)
	foreign, err := other.GenerateToken(user)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
