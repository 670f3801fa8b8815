package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"question_review/internal/domain/model"
	"question_review/internal/platform/database"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh SQLite database in a per-test temp dir and applies
// the schema.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

// seedQuestions inserts n question rows and returns their repository.
func seedQuestions(t *testing.T, db *database.DB, n int) QuestionRepository {
	t.Helper()

	repo := NewSQLQuestionRepository(db)
	pairs := make([]model.QuestionPair, 0, n)
	for i := 1; i <= n; i++ {
		pairs = append(pairs, model.QuestionPair{
			OldText: fmt.Sprintf("old question %d", i),
			NewText: fmt.Sprintf("new question %d", i),
		})
	}
	count, err := repo.InsertBatch(context.Background(), pairs, "test-batch")
	require.NoError(t, err)
	require.Equal(t, int64(n), count)
	return repo
}

func seedUser(t *testing.T, db *database.DB, username, role string) *model.User {
	t.Helper()

	repo := NewSQLUserRepository(db)
	user := &model.User{Username: username, HashedPassword: "x", Role: role}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}
