package repository

import (
	"context"
	"fmt"

	"question_review/internal/common"
	"question_review/internal/domain/model"
	"question_review/internal/platform/database"
)

// EditParams is the full-overwrite edit contract: every field is written on
// every call, so callers must supply current values for anything they do not
// mean to change.
type EditParams struct {
	NewText    string
	Editor     string
	Difficulty string
	Feedback   string
	Approved   bool
}

type QuestionRepository interface {
	// ListForUser returns every question when includeAll is set, otherwise
	// only rows assigned to username. An empty result is not an error.
	ListForUser(ctx context.Context, username string, includeAll bool) ([]model.Question, error)

	// Edit overwrites the mutable fields of a question and marks it updated.
	// Returns ErrNotFound when the id does not exist.
	Edit(ctx context.Context, id int64, p EditParams) error

	// SubmitFeedback sets feedback and marks the question updated, leaving
	// every other field alone.
	SubmitFeedback(ctx context.Context, id int64, feedback string) error

	// Approve sets approved and nothing else. Idempotent.
	Approve(ctx context.Context, id int64) error

	// AssignRange rewrites assigned_to for every id in [startID, endID],
	// returning how many rows matched. A reversed range matches zero rows
	// and is not an error.
	AssignRange(ctx context.Context, username string, startID, endID int64) (int64, error)

	// InsertBatch bulk-creates questions from old/new text pairs, stamping
	// each row with the import batch id.
	InsertBatch(ctx context.Context, pairs []model.QuestionPair, batchID string) (int64, error)

	// FindByID returns a single question. Returns ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Question, error)
}

type sqlQuestionRepository struct {
	db *database.DB
}

func NewSQLQuestionRepository(db *database.DB) QuestionRepository {
	return &sqlQuestionRepository{db: db}
}

const questionColumns = `id, old_text, new_text, feedback, updated, approved, assigned_to, difficulty, editor, import_batch`

func (r *sqlQuestionRepository) scanQuestion(scan func(dest ...interface{}) error) (*model.Question, error) {
	q := &model.Question{}
	err := scan(&q.ID, &q.OldText, &q.NewText, &q.Feedback, &q.Updated, &q.Approved,
		&q.AssignedTo, &q.Difficulty, &q.Editor, &q.ImportBatch)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *sqlQuestionRepository) ListForUser(ctx context.Context, username string, includeAll bool) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id`
	args := []interface{}{}
	if !includeAll {
		query = `SELECT ` + questionColumns + ` FROM questions WHERE assigned_to = ? ORDER BY id`
		args = append(args, username)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlQuestionRepository.ListForUser: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q, err := r.scanQuestion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlQuestionRepository.ListForUser scan: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (r *sqlQuestionRepository) Edit(ctx context.Context, id int64, p EditParams) error {
	query := `UPDATE questions
	          SET new_text = ?, updated = TRUE, approved = ?, feedback = ?, difficulty = ?, editor = ?
	          WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, p.NewText, p.Approved, p.Feedback, p.Difficulty, p.Editor, id)
	if err != nil {
		return fmt.Errorf("sqlQuestionRepository.Edit: %w", err)
	}
	return requireRowMatched(res, "question", id)
}

func (r *sqlQuestionRepository) SubmitFeedback(ctx context.Context, id int64, feedback string) error {
	query := `UPDATE questions SET feedback = ?, updated = TRUE WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, feedback, id)
	if err != nil {
		return fmt.Errorf("sqlQuestionRepository.SubmitFeedback: %w", err)
	}
	return requireRowMatched(res, "question", id)
}

func (r *sqlQuestionRepository) Approve(ctx context.Context, id int64) error {
	// Sets approved alone; whether the question was ever edited is a workflow
	// convention, not a constraint enforced here.
	query := `UPDATE questions SET approved = TRUE WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("sqlQuestionRepository.Approve: %w", err)
	}
	return requireRowMatched(res, "question", id)
}

func (r *sqlQuestionRepository) AssignRange(ctx context.Context, username string, startID, endID int64) (int64, error) {
	// BETWEEN with start > end matches nothing, which callers treat as a
	// successful zero-row assignment.
	query := `UPDATE questions SET assigned_to = ? WHERE id BETWEEN ? AND ?`
	res, err := r.db.ExecContext(ctx, query, username, startID, endID)
	if err != nil {
		return 0, fmt.Errorf("sqlQuestionRepository.AssignRange: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlQuestionRepository.AssignRange rows affected: %w", err)
	}
	return count, nil
}

func (r *sqlQuestionRepository) InsertBatch(ctx context.Context, pairs []model.QuestionPair, batchID string) (int64, error) {
	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlQuestionRepository.InsertBatch begin: %w", err)
	}
	defer tx.Rollback()

	query := r.db.Dialect.RewriteQuery(`INSERT INTO questions (old_text, new_text, import_batch) VALUES (?, ?, ?)`)
	var count int64
	for _, p := range pairs {
		if _, err := tx.ExecContext(ctx, query, p.OldText, p.NewText, batchID); err != nil {
			return 0, fmt.Errorf("sqlQuestionRepository.InsertBatch insert: %w", err)
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlQuestionRepository.InsertBatch commit: %w", err)
	}
	return count, nil
}

func (r *sqlQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	q, err := r.scanQuestion(row.Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("sqlQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}
