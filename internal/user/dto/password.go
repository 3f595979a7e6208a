package dto

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ChangePasswordInput struct {
	OldPassword    string `json:"oldPassword" validate:"required"`
	NewPassword    string `json:"newPassword" validate:"required,min=8"`
	RepeatPassword string `json:"repeatPassword" validate:"required"`
}
