package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/contact/domain"
	"github.com/mile-mijatovic/address-book/internal/contact/dto"
	"golang.org/x/sync/errgroup"
)

type ContactService struct {
	repo domain.Repository
}

func NewContactService(repo domain.Repository) *ContactService {
	return &ContactService{repo: repo}
}

// List returns one page of the owner's contacts, newest first. The count
// and the page query share a predicate and run concurrently; total is the
// filtered count and the page-overflow check derives total pages from it.
func (s *ContactService) List(ctx context.Context, ownerID string, page, limit int, filter domain.Filter) (*dto.ListResult, error) {
	currentPage := atLeastOne(page)
	perPage := atLeastOne(limit)
	offset := (currentPage - 1) * perPage

	var (
		contacts []domain.Contact
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contacts, err = s.repo.Find(gctx, ownerID, filter, offset, perPage)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, ownerID, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalPages := (total + int64(perPage) - 1) / int64(perPage)
	if total > 0 && int64(currentPage) > totalPages {
		return nil, apperror.NewNotFound(fmt.Sprintf("Page %d was not found.", currentPage))
	}

	outputs := make([]dto.ContactOutput, 0, len(contacts))
	for i := range contacts {
		outputs = append(outputs, *dto.NewContactOutput(&contacts[i]))
	}

	return &dto.ListResult{
		Contacts: outputs,
		Pagination: dto.Pagination{
			Page:  currentPage,
			Limit: perPage,
			Total: total,
		},
	}, nil
}

func (s *ContactService) GetByID(ctx context.Context, contactID, ownerID string) (*dto.ContactOutput, error) {
	contact, err := s.repo.GetByID(ctx, contactID, ownerID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.ErrContactNotFound
	}

	return dto.NewContactOutput(contact), nil
}

func (s *ContactService) Add(ctx context.Context, ownerID string, input dto.AddContactInput) (*dto.ContactOutput, error) {
	exists, err := s.repo.EmailExists(ctx, ownerID, input.Contact.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.ErrContactExists
	}

	now := time.Now()

	contact := &domain.Contact{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Details: domain.Details{
			FirstName:       input.Contact.FirstName,
			LastName:        input.Contact.LastName,
			TelephoneNumber: input.Contact.TelephoneNumber,
			MobileNumber:    input.Contact.MobileNumber,
			Fax:             input.Contact.Fax,
			Email:           input.Contact.Email,
			Image:           input.Contact.Image,
		},
		Address: domain.Address{
			Street:  input.Address.Street,
			City:    input.Address.City,
			ZipCode: input.Address.ZipCode,
		},
		AdditionalInfo: input.AdditionalInfo,
		Social:         input.Social,
		Favorite:       input.Favorite,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	return dto.NewContactOutput(contact), nil
}

func (s *ContactService) Update(ctx context.Context, ownerID, contactID string, update domain.Update) (*dto.ContactOutput, error) {
	contact, err := s.repo.Update(ctx, ownerID, contactID, update)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.ErrContactNotFound
	}

	return dto.NewContactOutput(contact), nil
}

func (s *ContactService) Delete(ctx context.Context, contactID, ownerID string) error {
	deleted, err := s.repo.Delete(ctx, contactID, ownerID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.ErrContactNotFound
	}

	return nil
}

// atLeastOne coerces page/limit values to a floor of 1 so a malicious or
// malformed query can never produce a negative offset.
func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
