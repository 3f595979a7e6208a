package dto

import (
	"time"

	"github.com/mile-mijatovic/address-book/internal/user/domain"
)

// UserOutput is the profile view of a user, without the password hash
// or record timestamps.
type UserOutput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	BirthDate *string `json:"birthDate,omitempty"`
	Email     string  `json:"email"`
	Image     *string `json:"image"`
}

func NewUserOutput(user *domain.User) *UserOutput {
	out := &UserOutput{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Image:     user.Image,
	}

	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format(time.DateOnly)
		out.BirthDate = &birthDate
	}

	return out
}
