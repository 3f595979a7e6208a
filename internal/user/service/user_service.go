package service

//go:generate mockgen -destination=../../mocks/mock_token_issuer.go -package=mocks github.com/mile-mijatovic/address-book/internal/user/service TokenIssuer
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/mile-mijatovic/address-book/internal/user/service Mailer
//go:generate mockgen -destination=../../mocks/mock_image_store.go -package=mocks github.com/mile-mijatovic/address-book/internal/user/service ImageStore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/credential"
	"github.com/mile-mijatovic/address-book/internal/user/domain"
	"github.com/mile-mijatovic/address-book/internal/user/dto"
	"go.uber.org/zap"
)

const (
	maxImageSize      = 5 << 20 // 5MB
	resetSecretLength = 32
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Mailer delivers the password-reset email.
type Mailer interface {
	SendResetPassword(ctx context.Context, to, token string) error
}

// ImageStore persists profile images by name.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) error
	Delete(ctx context.Context, filename string) error
}

type UserService struct {
	repo     domain.Repository
	hasher   *credential.Hasher
	tokens   TokenIssuer
	mailer   Mailer
	images   ImageStore
	resetTTL time.Duration
	logger   *zap.Logger
}

func NewUserService(repo domain.Repository, hasher *credential.Hasher, tokens TokenIssuer,
	mailer Mailer, images ImageStore, resetTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		images:   images,
		resetTTL: resetTTL,
		logger:   logger,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) error {
	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return apperror.ErrEmailExists
	}

	// Hashing is an explicit step of every path that sets a password,
	// never a persistence hook.
	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if input.BirthDate != "" {
		birthDate, err := time.Parse(time.DateOnly, input.BirthDate)
		if err != nil {
			return apperror.NewValidation("Birth date must be a valid date in YYYY-MM-DD format.")
		}
		user.BirthDate = &birthDate
	}

	return s.repo.Create(ctx, user)
}

// Authenticate verifies the credentials and returns a signed session
// token. A missing user and a wrong password are indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, input dto.LoginInput) (string, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}

	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return "", apperror.ErrIncorrectCredentials
	}

	return s.tokens.Issue(user.ID)
}

// ForgotPassword issues a reset token and emails it. It succeeds silently
// for unknown addresses so callers cannot enumerate accounts.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	secret, err := generateResetSecret()
	if err != nil {
		return err
	}

	token := &domain.ResetToken{
		ID:        uuid.New().String(),
		Token:     secret,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.resetTTL),
	}

	if err := s.repo.CreateResetToken(ctx, token); err != nil {
		return err
	}

	return s.mailer.SendResetPassword(ctx, email, secret)
}

func (s *UserService) ResetPassword(ctx context.Context, secret, newPassword string) error {
	record, err := s.repo.GetResetToken(ctx, secret)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.ErrInvalidResetToken
	}

	user, err := s.repo.GetByID(ctx, record.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	return s.repo.ResetPassword(ctx, user.ID, hashedPassword, record.ID)
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, input dto.ChangePasswordInput) error {
	if input.NewPassword != input.RepeatPassword {
		return apperror.ErrPasswordMismatch
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}

	if !s.hasher.Verify(input.OldPassword, user.PasswordHash) {
		return apperror.ErrIncorrectOldPassword
	}

	hashedPassword, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, hashedPassword)
}

func (s *UserService) GetInfo(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	return dto.NewUserOutput(user), nil
}

// UploadImage validates and stores a new profile image, then removes the
// previous one. The old file's deletion is best-effort; a failure is
// logged and does not block the update.
func (s *UserService) UploadImage(ctx context.Context, userID, filename, contentType string, data []byte) error {
	if len(data) == 0 {
		return apperror.ErrImageNotProvided
	}
	if len(data) > maxImageSize {
		return apperror.ErrImageTooLarge
	}

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return apperror.ErrInvalidImageType
	}
	if e := filepath.Ext(filename); e != "" {
		ext = e
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}

	newName := uuid.New().String() + ext

	if err := s.images.Save(ctx, newName, contentType, data); err != nil {
		return err
	}

	if err := s.repo.UpdateImage(ctx, userID, &newName); err != nil {
		// The metadata update failed, so the fresh file is orphaned.
		if delErr := s.images.Delete(ctx, newName); delErr != nil {
			s.logger.Warn("failed to clean up uploaded image",
				zap.String("image", newName), zap.Error(delErr))
		}
		return err
	}

	if user.Image != nil {
		if err := s.images.Delete(ctx, *user.Image); err != nil {
			s.logger.Warn("failed to delete previous profile image",
				zap.String("image", *user.Image), zap.Error(err))
		}
	}

	return nil
}

func (s *UserService) ResetImage(ctx context.Context, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}

	if user.Image != nil {
		if err := s.images.Delete(ctx, *user.Image); err != nil {
			s.logger.Warn("failed to delete profile image",
				zap.String("image", *user.Image), zap.Error(err))
		}
	}

	return s.repo.UpdateImage(ctx, userID, nil)
}

// CloseProfile deletes the user and, with it, every owned contact via
// the schema's cascade. Deleting an already-deleted profile reports not
// found, same as a never-existing one.
func (s *UserService) CloseProfile(ctx context.Context, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}

	deleted, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.ErrUserNotFound
	}

	if user.Image != nil {
		if err := s.images.Delete(ctx, *user.Image); err != nil {
			s.logger.Warn("failed to delete profile image",
				zap.String("image", *user.Image), zap.Error(err))
		}
	}

	return nil
}

func generateResetSecret() (string, error) {
	buf := make([]byte, resetSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
