package domain

import "time"

type Contact struct {
	ID             string
	OwnerID        string
	Details        Details
	Address        Address
	AdditionalInfo *AdditionalInfo
	Social         *Social
	Favorite       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Details struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	TelephoneNumber *string `json:"telephoneNumber,omitempty"`
	MobileNumber    *string `json:"mobileNumber,omitempty"`
	Fax             *string `json:"fax,omitempty"`
	Email           string  `json:"email"`
	Image           *string `json:"image,omitempty"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

type AdditionalInfo struct {
	BirthDate         *string `json:"birthDate,omitempty"`
	CompanyName       *string `json:"companyName,omitempty"`
	Position          *string `json:"position,omitempty"`
	CompanyAddress    *string `json:"companyAddress,omitempty"`
	AdditionalDetails *string `json:"additionalDetails,omitempty"`
}

type Social struct {
	Facebook  *string `json:"facebook,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Slack     *string `json:"slack,omitempty"`
	Skype     *string `json:"skype,omitempty"`
}

// Filter holds the supported case-insensitive substring filters. Empty
// fields are ignored; supplied ones are ANDed together.
type Filter struct {
	FirstName       string
	LastName        string
	TelephoneNumber string
	MobileNumber    string
	Fax             string
	Email           string
}

// Update carries the fields of a partial update. Nil pointers leave the
// stored value untouched.
type Update struct {
	FirstName       *string
	LastName        *string
	TelephoneNumber *string
	MobileNumber    *string
	Fax             *string
	Email           *string
	Image           *string
	Street          *string
	City            *string
	ZipCode         *string
	AdditionalInfo  *AdditionalInfo
	Social          *Social
	Favorite        *bool
}
