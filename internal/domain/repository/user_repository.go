package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"question_review/internal/common"
	"question_review/internal/domain/model"
	"question_review/internal/platform/database"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// ListByRole returns id/username pairs in insertion order (ascending id),
	// used to populate assignment targets.
	ListByRole(ctx context.Context, role string) ([]model.UserSummary, error)
}

type sqlUserRepository struct {
	db *database.DB
}

func NewSQLUserRepository(db *database.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

func (r *sqlUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.HashedPassword, user.Role)
	if err != nil {
		if r.db.Dialect.IsUniqueViolation(err) {
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("sqlUserRepository.Create: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		// The postgres driver does not implement LastInsertId; the username
		// is unique, so a follow-up lookup is equivalent.
		return r.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, user.Username).Scan(&user.ID)
	}
	user.ID = id
	return nil
}

func (r *sqlUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, password_hash, role, created_at
	          FROM users WHERE username = ?`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.HashedPassword, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("sqlUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, username, password_hash, role, created_at
	          FROM users WHERE id = ?`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.HashedPassword, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("sqlUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepository) ListByRole(ctx context.Context, role string) ([]model.UserSummary, error) {
	query := `SELECT id, username FROM users WHERE role = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("sqlUserRepository.ListByRole: %w", err)
	}
	defer rows.Close()

	users := []model.UserSummary{}
	for rows.Next() {
		var u model.UserSummary
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("sqlUserRepository.ListByRole scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
