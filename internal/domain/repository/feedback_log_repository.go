package repository

import (
	"context"
	"fmt"

	"question_review/internal/domain/model"
	"question_review/internal/platform/database"
)

type FeedbackLogRepository interface {
	Append(ctx context.Context, questionID int64, author, body string) error
	List(ctx context.Context) ([]model.FeedbackEntry, error)
	// Update rewrites an entry's body. Returns ErrNotFound.
	Update(ctx context.Context, id int64, body string) error
	// Delete removes an entry. Returns ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

type sqlFeedbackLogRepository struct {
	db *database.DB
}

func NewSQLFeedbackLogRepository(db *database.DB) FeedbackLogRepository {
	return &sqlFeedbackLogRepository{db: db}
}

func (r *sqlFeedbackLogRepository) Append(ctx context.Context, questionID int64, author, body string) error {
	query := `INSERT INTO feedback_log (question_id, author, body) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, questionID, author, body); err != nil {
		return fmt.Errorf("sqlFeedbackLogRepository.Append: %w", err)
	}
	return nil
}

func (r *sqlFeedbackLogRepository) List(ctx context.Context) ([]model.FeedbackEntry, error) {
	query := `SELECT id, question_id, author, body, created_at FROM feedback_log ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlFeedbackLogRepository.List: %w", err)
	}
	defer rows.Close()

	entries := []model.FeedbackEntry{}
	for rows.Next() {
		var e model.FeedbackEntry
		if err := rows.Scan(&e.ID, &e.QuestionID, &e.Author, &e.Body, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlFeedbackLogRepository.List scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *sqlFeedbackLogRepository) Update(ctx context.Context, id int64, body string) error {
	query := `UPDATE feedback_log SET body = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, body, id)
	if err != nil {
		return fmt.Errorf("sqlFeedbackLogRepository.Update: %w", err)
	}
	return requireRowMatched(res, "feedback entry", id)
}

func (r *sqlFeedbackLogRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM feedback_log WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("sqlFeedbackLogRepository.Delete: %w", err)
	}
	return requireRowMatched(res, "feedback entry", id)
}
