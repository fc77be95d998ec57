//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/deskhive/internal/domain"
	"github.com/deskhive/deskhive/internal/testutil"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)

	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        "specialist@example.com",
		PasswordHash: "hash123",
		FullName:     "Иванова Анна",
		Role:         domain.RoleSpecialist,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, userRepo.Create(ctx, u))

	byID, err := userRepo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Equal(t, domain.RoleSpecialist, byID.Role)
	assert.True(t, byID.IsActive)

	byEmail, err := userRepo.GetByEmail(ctx, "specialist@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "hash123", byEmail.PasswordHash)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)

	_, err := userRepo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)

	_, err := userRepo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)

	first := &domain.User{
		ID:           uuid.NewString(),
		Email:        "dup@example.com",
		PasswordHash: "hash",
		FullName:     "Первый",
		Role:         domain.RoleClient,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, userRepo.Create(ctx, first))

	second := &domain.User{
		ID:           uuid.NewString(),
		Email:        "dup@example.com",
		PasswordHash: "hash",
		FullName:     "Второй",
		Role:         domain.RoleClient,
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	assert.Error(t, userRepo.Create(ctx, second))
}

func TestUserRepository_CountAll(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	userRepo := NewUserRepository(pool)

	n, err := userRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	createTestUser(ctx, t, pool, domain.RoleClient)
	createTestUser(ctx, t, pool, domain.RoleAdmin)

	n, err = userRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
