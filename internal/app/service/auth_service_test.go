package service

import (
	"context"
	"testing"
	"time"

	"question_review/internal/common"
	"question_review/internal/common/security"
	"question_review/internal/domain/model"
	"question_review/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	security.InitJWTWithKey([]byte("test-secret"), time.Hour)
}

func TestRegisterDefaultsToTeacher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.auth.Register(ctx, RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.NotZero(t, id)

	teachers, err := env.auth.ListTeachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "alice", teachers[0].Username)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterRequest{Username: "", Password: "pw"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.auth.Register(ctx, RegisterRequest{Username: "u", Password: ""})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.auth.Register(ctx, RegisterRequest{Username: "u", Password: "pw", Role: "superuser"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = env.auth.Register(ctx, RegisterRequest{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestLoginExactPasswordOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice", "hunter2-exact", model.RoleTeacher)

	resp, err := env.auth.Login(ctx, LoginRequest{Username: "alice", Password: "hunter2-exact"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, model.RoleTeacher, resp.Role)
	assert.NotEmpty(t, resp.Token)

	_, err = env.auth.Login(ctx, LoginRequest{Username: "alice", Password: "hunter2-exacT"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice", "pw", model.RoleTeacher)

	_, wrongPassword := env.auth.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	_, unknownUser := env.auth.Login(ctx, LoginRequest{Username: "mallory", Password: "wrong"})

	// The caller must not be able to tell which half failed.
	assert.ErrorIs(t, wrongPassword, common.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, common.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

// brokenResetLimiter allows every attempt but fails the post-login reset.
type brokenResetLimiter struct{}

func (brokenResetLimiter) Allow(ctx context.Context, username string) (bool, error) {
	return true, nil
}
func (brokenResetLimiter) Reset(ctx context.Context, username string) error {
	return assert.AnError
}
func (brokenResetLimiter) Close() error { return nil }

func TestLoginSurvivesThrottleResetFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice", "pw", model.RoleTeacher)

	auth := NewAuthService(repository.NewSQLUserRepository(env.db), brokenResetLimiter{})

	resp, err := auth.Login(ctx, LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err, "a throttle bookkeeping failure must not fail a correct login")
	assert.NotEmpty(t, resp.Token)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.auth.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, env.auth.EnsureAdmin(ctx, "admin", "changed-later"))

	// The original password still works: the second call did not overwrite.
	resp, err := env.auth.Login(ctx, LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.Role)
}

func TestLookupID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "pw", model.RoleTeacher)

	id, err := env.auth.LookupID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, id)

	_, err = env.auth.LookupID(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
