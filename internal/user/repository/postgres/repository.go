package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/user/domain"
)

const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repository relies on. pgxmock
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, email, password_hash, image, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, email, password_hash, image, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, birth_date, email, password_hash, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.FirstName, user.LastName, user.BirthDate, user.Email,
		user.PasswordHash, user.Image, user.CreatedAt, user.UpdatedAt)

	// The unique constraint on email is the authoritative guard; the
	// service's pre-check only exists for the friendlier error path.
	if isUniqueViolation(err) {
		return apperror.ErrEmailExists
	}

	return err
}

func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, userID, passwordHash)

	return err
}

func (r *Repository) UpdateImage(ctx context.Context, userID string, image *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET image = $2, updated_at = now() WHERE id = $1
	`, userID, image)

	return err
}

func (r *Repository) Delete(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *Repository) CreateResetToken(ctx context.Context, token *domain.ResetToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reset_tokens (id, token, user_id, expires_at)
		VALUES ($1, $2, $3, $4)
	`, token.ID, token.Token, token.UserID, token.ExpiresAt)

	return err
}

func (r *Repository) GetResetToken(ctx context.Context, secret string) (*domain.ResetToken, error) {
	query := `
		SELECT id, token, user_id, expires_at
		FROM reset_tokens
		WHERE token = $1 AND expires_at > now()
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, secret)

	var token domain.ResetToken
	err := row.Scan(&token.ID, &token.Token, &token.UserID, &token.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return &token, nil
}

// ResetPassword commits the password change and the token consumption as
// one unit of work, so a replayed token always fails resolution.
func (r *Repository) ResetPassword(ctx context.Context, userID, passwordHash, tokenID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1
	`, userID, passwordHash)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM reset_tokens WHERE id = $1`, tokenID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.BirthDate,
		&user.Email, &user.PasswordHash, &user.Image, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
