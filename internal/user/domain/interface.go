package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/mile-mijatovic/address-book/internal/user/domain Repository

import "context"

type Repository interface {
	// GetByEmail returns nil, nil when no user matches.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID returns nil, nil when no user matches.
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateImage(ctx context.Context, userID string, image *string) error
	// Delete removes at most one user and reports how many rows went away.
	Delete(ctx context.Context, userID string) (int64, error)

	CreateResetToken(ctx context.Context, token *ResetToken) error
	// GetResetToken returns nil, nil for absent and expired secrets alike.
	GetResetToken(ctx context.Context, secret string) (*ResetToken, error)
	// ResetPassword updates the password hash and consumes the token in a
	// single transaction so a committed password change always invalidates
	// the token that authorized it.
	ResetPassword(ctx context.Context, userID, passwordHash, tokenID string) error
}
