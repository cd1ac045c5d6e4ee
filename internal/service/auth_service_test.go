package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imoveisuniao_backend/internal/model"
	"imoveisuniao_backend/pkg/utils/jwt"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)

	user, token, err := svc.Register(context.Background(), "admin@example.com", "s3cret!", "Admin")
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleAdmin, user.Role)
	assert.NotEqual(t, "s3cret!", user.Password, "password is stored hashed")

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	logged, loginToken, err := svc.Login(context.Background(), "admin@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)

	_, _, err := svc.Register(context.Background(), "admin@example.com", "s3cret!", "Admin")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "admin@example.com", "other", "Other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)

	_, _, err := svc.Register(context.Background(), "admin@example.com", "s3cret!", "Admin")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	db := newTestDB(t)
	svc := NewAuthService(db)

	user, _, err := svc.Register(context.Background(), "admin@example.com", "s3cret!", "Admin")
	require.NoError(t, err)

	found, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", found.Email)

	_, err = svc.GetUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
