package domain

//go:generate mockgen -destination=../../mocks/mock_contact_repository.go -package=mocks github.com/mile-mijatovic/address-book/internal/contact/domain Repository

import "context"

// Repository is the owner-scoped contact store. Every query and mutation
// carries the owner's id; a contact owned by someone else behaves exactly
// like a missing one.
type Repository interface {
	Find(ctx context.Context, ownerID string, filter Filter, offset, limit int) ([]Contact, error)
	Count(ctx context.Context, ownerID string, filter Filter) (int64, error)
	// GetByID returns nil, nil when no contact matches the id/owner pair.
	GetByID(ctx context.Context, contactID, ownerID string) (*Contact, error)
	EmailExists(ctx context.Context, ownerID, email string) (bool, error)
	Create(ctx context.Context, contact *Contact) error
	// Update applies the partial update and returns nil, nil when no
	// contact matches the id/owner pair.
	Update(ctx context.Context, ownerID, contactID string, update Update) (*Contact, error)
	// Delete reports how many rows were removed (0 or 1).
	Delete(ctx context.Context, contactID, ownerID string) (int64, error)
}
