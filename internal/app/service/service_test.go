package service

import (
	"context"
	"path/filepath"
	"testing"

	"question_review/internal/domain/model"
	"question_review/internal/domain/repository"
	"question_review/internal/platform/database"
	"question_review/internal/platform/throttle"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db          *database.DB
	auth        *AuthService
	questions   *QuestionService
	feedbackLog *FeedbackLogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	userRepo := repository.NewSQLUserRepository(db)
	questionRepo := repository.NewSQLQuestionRepository(db)
	logRepo := repository.NewSQLFeedbackLogRepository(db)

	return &testEnv{
		db:          db,
		auth:        NewAuthService(userRepo, throttle.NewNopLimiter()),
		questions:   NewQuestionService(questionRepo, userRepo, logRepo),
		feedbackLog: NewFeedbackLogService(logRepo),
	}
}

// register creates a user through the service and returns its identity.
func (e *testEnv) register(t *testing.T, username, password, role string) Identity {
	t.Helper()

	id, err := e.auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return Identity{UserID: id, Username: username, Role: role}
}

// seedQuestions bulk-inserts n bare questions.
func (e *testEnv) seedQuestions(t *testing.T, n int) {
	t.Helper()

	pairs := make([]model.QuestionPair, n)
	for i := range pairs {
		pairs[i] = model.QuestionPair{OldText: "old", NewText: "new"}
	}
	repo := repository.NewSQLQuestionRepository(e.db)
	_, err := repo.InsertBatch(context.Background(), pairs, "seed")
	require.NoError(t, err)
}
