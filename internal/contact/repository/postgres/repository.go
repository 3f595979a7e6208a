package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/contact/domain"
)

const uniqueViolation = "23505"

const contactColumns = `id, owner_id, first_name, last_name, telephone_number, mobile_number, fax,
		email, image, street, city, zip_code, additional_info, social, favorite, created_at, updated_at`

// DB is the subset of pgxpool.Pool the repository relies on. pgxmock
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Find(ctx context.Context, ownerID string, filter domain.Filter, offset, limit int) ([]domain.Contact, error) {
	where, args := buildPredicate(ownerID, filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE %s
		ORDER BY created_at DESC, id DESC
		OFFSET $%d LIMIT $%d;
	`, contactColumns, where, len(args)+1, len(args)+2)
	args = append(args, offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

func (r *Repository) Count(ctx context.Context, ownerID string, filter domain.Filter) (int64, error) {
	where, args := buildPredicate(ownerID, filter)

	var total int64
	err := r.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT count(*) FROM contacts WHERE %s;`, where), args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return total, nil
}

func (r *Repository) GetByID(ctx context.Context, contactID, ownerID string) (*domain.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE id = $1 AND owner_id = $2
		LIMIT 1;
	`, contactColumns)

	contact, err := scanContact(r.db.QueryRow(ctx, query, contactID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

func (r *Repository) EmailExists(ctx context.Context, ownerID, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM contacts WHERE owner_id = $1 AND lower(email) = lower($2)
		);
	`, ownerID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check contact email: %w", err)
	}

	return exists, nil
}

func (r *Repository) Create(ctx context.Context, c *domain.Contact) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contacts (id, owner_id, first_name, last_name, telephone_number, mobile_number, fax,
			email, image, street, city, zip_code, additional_info, social, favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, c.ID, c.OwnerID, c.Details.FirstName, c.Details.LastName, c.Details.TelephoneNumber,
		c.Details.MobileNumber, c.Details.Fax, c.Details.Email, c.Details.Image,
		c.Address.Street, c.Address.City, c.Address.ZipCode,
		c.AdditionalInfo, c.Social, c.Favorite, c.CreatedAt, c.UpdatedAt)

	// The owner-scoped unique constraint on email is the authoritative
	// guard against the check-then-act race.
	if isUniqueViolation(err) {
		return apperror.ErrContactExists
	}

	return err
}

func (r *Repository) Update(ctx context.Context, ownerID, contactID string, update domain.Update) (*domain.Contact, error) {
	assignments, args := buildAssignments(update)
	if len(assignments) == 0 {
		return r.GetByID(ctx, contactID, ownerID)
	}

	args = append(args, contactID, ownerID)
	query := fmt.Sprintf(`
		UPDATE contacts
		SET %s, updated_at = now()
		WHERE id = $%d AND owner_id = $%d
		RETURNING %s;
	`, strings.Join(assignments, ", "), len(args)-1, len(args), contactColumns)

	contact, err := scanContact(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, apperror.ErrContactExists
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

func (r *Repository) Delete(ctx context.Context, contactID, ownerID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM contacts WHERE id = $1 AND owner_id = $2
	`, contactID, ownerID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// buildPredicate renders the WHERE clause every contact query shares:
// owner equality ANDed with case-insensitive substring matches for each
// supplied filter field.
func buildPredicate(ownerID string, filter domain.Filter) (string, []any) {
	clauses := []string{"owner_id = $1"}
	args := []any{ownerID}

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}

	add("first_name", filter.FirstName)
	add("last_name", filter.LastName)
	add("telephone_number", filter.TelephoneNumber)
	add("mobile_number", filter.MobileNumber)
	add("fax", filter.Fax)
	add("email", filter.Email)

	return strings.Join(clauses, " AND "), args
}

func buildAssignments(update domain.Update) ([]string, []any) {
	var assignments []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FirstName != nil {
		add("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name", *update.LastName)
	}
	if update.TelephoneNumber != nil {
		add("telephone_number", *update.TelephoneNumber)
	}
	if update.MobileNumber != nil {
		add("mobile_number", *update.MobileNumber)
	}
	if update.Fax != nil {
		add("fax", *update.Fax)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.Image != nil {
		add("image", *update.Image)
	}
	if update.Street != nil {
		add("street", *update.Street)
	}
	if update.City != nil {
		add("city", *update.City)
	}
	if update.ZipCode != nil {
		add("zip_code", *update.ZipCode)
	}
	if update.AdditionalInfo != nil {
		add("additional_info", update.AdditionalInfo)
	}
	if update.Social != nil {
		add("social", update.Social)
	}
	if update.Favorite != nil {
		add("favorite", *update.Favorite)
	}

	return assignments, args
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.OwnerID, &c.Details.FirstName, &c.Details.LastName,
		&c.Details.TelephoneNumber, &c.Details.MobileNumber, &c.Details.Fax,
		&c.Details.Email, &c.Details.Image, &c.Address.Street, &c.Address.City,
		&c.Address.ZipCode, &c.AdditionalInfo, &c.Social, &c.Favorite,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
