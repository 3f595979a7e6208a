package dto

import (
	"time"

	"github.com/mile-mijatovic/address-book/internal/contact/domain"
)

type DetailsInput struct {
	FirstName       string  `json:"firstName" validate:"required"`
	LastName        string  `json:"lastName" validate:"required"`
	TelephoneNumber *string `json:"telephoneNumber"`
	MobileNumber    *string `json:"mobileNumber"`
	Fax             *string `json:"fax"`
	Email           string  `json:"email" validate:"required,email"`
	Image           *string `json:"image"`
}

type AddressInput struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type AddContactInput struct {
	Contact        DetailsInput           `json:"contact" validate:"required"`
	Address        AddressInput           `json:"address" validate:"required"`
	AdditionalInfo *domain.AdditionalInfo `json:"additionalInfo"`
	Social         *domain.Social         `json:"social"`
	Favorite       bool                   `json:"favorite"`
}

// UpdateContactInput mirrors AddContactInput with every field optional;
// absent fields keep their stored value.
type UpdateContactInput struct {
	Contact *struct {
		FirstName       *string `json:"firstName"`
		LastName        *string `json:"lastName"`
		TelephoneNumber *string `json:"telephoneNumber"`
		MobileNumber    *string `json:"mobileNumber"`
		Fax             *string `json:"fax"`
		Email           *string `json:"email" validate:"omitempty,email"`
		Image           *string `json:"image"`
	} `json:"contact"`
	Address *struct {
		Street  *string `json:"street"`
		City    *string `json:"city"`
		ZipCode *string `json:"zipCode"`
	} `json:"address"`
	AdditionalInfo *domain.AdditionalInfo `json:"additionalInfo"`
	Social         *domain.Social         `json:"social"`
	Favorite       *bool                  `json:"favorite"`
}

// ToUpdate flattens the nested partial payload into the repository's
// update shape.
func (in UpdateContactInput) ToUpdate() domain.Update {
	update := domain.Update{
		AdditionalInfo: in.AdditionalInfo,
		Social:         in.Social,
		Favorite:       in.Favorite,
	}

	if in.Contact != nil {
		update.FirstName = in.Contact.FirstName
		update.LastName = in.Contact.LastName
		update.TelephoneNumber = in.Contact.TelephoneNumber
		update.MobileNumber = in.Contact.MobileNumber
		update.Fax = in.Contact.Fax
		update.Email = in.Contact.Email
		update.Image = in.Contact.Image
	}

	if in.Address != nil {
		update.Street = in.Address.Street
		update.City = in.Address.City
		update.ZipCode = in.Address.ZipCode
	}

	return update
}

type ContactOutput struct {
	ID             string                 `json:"id"`
	Contact        domain.Details         `json:"contact"`
	Address        domain.Address         `json:"address"`
	AdditionalInfo *domain.AdditionalInfo `json:"additionalInfo,omitempty"`
	Social         *domain.Social         `json:"social,omitempty"`
	Favorite       bool                   `json:"favorite"`
	CreatedAt      time.Time              `json:"createdAt"`
}

func NewContactOutput(c *domain.Contact) *ContactOutput {
	return &ContactOutput{
		ID:             c.ID,
		Contact:        c.Details,
		Address:        c.Address,
		AdditionalInfo: c.AdditionalInfo,
		Social:         c.Social,
		Favorite:       c.Favorite,
		CreatedAt:      c.CreatedAt,
	}
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type ListResult struct {
	Contacts   []ContactOutput
	Pagination Pagination
}
