package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/credential"
	"github.com/mile-mijatovic/address-book/internal/mocks"
	"github.com/mile-mijatovic/address-book/internal/user/domain"
	"github.com/mile-mijatovic/address-book/internal/user/dto"
	"github.com/mile-mijatovic/address-book/internal/user/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testResetTTL = time.Hour

type serviceMocks struct {
	repo   *mocks.MockUserRepository
	tokens *mocks.MockTokenIssuer
	mailer *mocks.MockMailer
	images *mocks.MockImageStore
}

func newService(t *testing.T) (*service.UserService, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		repo:   mocks.NewMockUserRepository(ctrl),
		tokens: mocks.NewMockTokenIssuer(ctrl),
		mailer: mocks.NewMockMailer(ctrl),
		images: mocks.NewMockImageStore(ctrl),
	}

	hasher := credential.NewHasher(4)
	s := service.NewUserService(m.repo, hasher, m.tokens, m.mailer, m.images, testResetTTL, zap.NewNop())

	return s, m
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := credential.NewHasher(4).Hash(password)
	require.NoError(t, err)
	return hash
}

func TestUserService_Register_Success(t *testing.T) {
	s, m := newService(t)

	input := dto.RegisterInput{
		FirstName: "Mile",
		LastName:  "Mijatovic",
		BirthDate: "1990-04-12",
		Email:     "mile@example.com",
		Password:  "password123",
	}

	m.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *domain.User) error {
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, input.Email, user.Email)
			assert.NotEqual(t, input.Password, user.PasswordHash)
			assert.NotEmpty(t, user.PasswordHash)
			require.NotNil(t, user.BirthDate)
			assert.Equal(t, "1990-04-12", user.BirthDate.Format(time.DateOnly))
			return nil
		})

	err := s.Register(context.Background(), input)

	assert.NoError(t, err)
}

func TestUserService_Register_EmailAlreadyExists(t *testing.T) {
	s, m := newService(t)

	input := dto.RegisterInput{
		FirstName: "Mile",
		LastName:  "Mijatovic",
		Email:     "mile@example.com",
		Password:  "password123",
	}

	m.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).
		Return(&domain.User{ID: "existing-id", Email: input.Email}, nil)

	err := s.Register(context.Background(), input)

	assert.Equal(t, apperror.ErrEmailExists, err)
}

func TestUserService_Authenticate_Success(t *testing.T) {
	s, m := newService(t)

	user := &domain.User{
		ID:           "user-1",
		Email:        "mile@example.com",
		PasswordHash: hashOf(t, "password123"),
	}

	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.tokens.EXPECT().Issue(user.ID).Return("signed-token", nil)

	token, err := s.Authenticate(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}

func TestUserService_Authenticate_SameErrorForMissingUserAndWrongPassword(t *testing.T) {
	s, m := newService(t)

	m.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	_, missingErr := s.Authenticate(context.Background(), dto.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	user := &domain.User{
		ID:           "user-1",
		Email:        "mile@example.com",
		PasswordHash: hashOf(t, "password123"),
	}
	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, wrongErr := s.Authenticate(context.Background(), dto.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.Equal(t, apperror.ErrIncorrectCredentials, missingErr)
	assert.Equal(t, apperror.ErrIncorrectCredentials, wrongErr)
}

func TestUserService_ForgotPassword_KnownEmail(t *testing.T) {
	s, m := newService(t)

	user := &domain.User{ID: "user-1", Email: "mile@example.com"}
	var issuedSecret string

	m.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.repo.EXPECT().CreateResetToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, token *domain.ResetToken) error {
			assert.Equal(t, user.ID, token.UserID)
			assert.Len(t, token.Token, 64)
			assert.WithinDuration(t, time.Now().Add(testResetTTL), token.ExpiresAt, time.Minute)
			issuedSecret = token.Token
			return nil
		})
	m.mailer.EXPECT().SendResetPassword(gomock.Any(), user.Email, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, secret string) error {
			assert.Equal(t, issuedSecret, secret)
			return nil
		})

	err := s.ForgotPassword(context.Background(), user.Email)

	assert.NoError(t, err)
}

func TestUserService_ForgotPassword_UnknownEmailSucceedsSilently(t *testing.T) {
	s, m := newService(t)

	m.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	err := s.ForgotPassword(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
}

func TestUserService_ResetPassword_Success(t *testing.T) {
	s, m := newService(t)

	record := &domain.ResetToken{ID: "token-1", Token: "secret", UserID: "user-1"}
	user := &domain.User{ID: "user-1"}

	m.repo.EXPECT().GetResetToken(gomock.Any(), "secret").Return(record, nil)
	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
	m.repo.EXPECT().ResetPassword(gomock.Any(), "user-1", gomock.Any(), "token-1").Return(nil)

	err := s.ResetPassword(context.Background(), "secret", "new-password")

	assert.NoError(t, err)
}

func TestUserService_ResetPassword_InvalidOrExpiredToken(t *testing.T) {
	s, m := newService(t)

	// The repository resolves absent and expired secrets identically.
	m.repo.EXPECT().GetResetToken(gomock.Any(), "stale-secret").Return(nil, nil)

	err := s.ResetPassword(context.Background(), "stale-secret", "new-password")

	assert.Equal(t, apperror.ErrInvalidResetToken, err)
}

func TestUserService_ChangePassword_Mismatch(t *testing.T) {
	s, _ := newService(t)

	err := s.ChangePassword(context.Background(), "user-1", dto.ChangePasswordInput{
		OldPassword:    "old-password",
		NewPassword:    "new-password",
		RepeatPassword: "different",
	})

	assert.Equal(t, apperror.ErrPasswordMismatch, err)
}

func TestUserService_ChangePassword_WrongOldPassword(t *testing.T) {
	s, m := newService(t)

	user := &domain.User{ID: "user-1", PasswordHash: hashOf(t, "old-password")}
	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)

	err := s.ChangePassword(context.Background(), "user-1", dto.ChangePasswordInput{
		OldPassword:    "not-the-old-password",
		NewPassword:    "new-password",
		RepeatPassword: "new-password",
	})

	assert.Equal(t, apperror.ErrIncorrectOldPassword, err)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	s, m := newService(t)

	user := &domain.User{ID: "user-1", PasswordHash: hashOf(t, "old-password")}
	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
	m.repo.EXPECT().UpdatePassword(gomock.Any(), "user-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, hash string) error {
			assert.True(t, credential.NewHasher(4).Verify("new-password", hash))
			return nil
		})

	err := s.ChangePassword(context.Background(), "user-1", dto.ChangePasswordInput{
		OldPassword:    "old-password",
		NewPassword:    "new-password",
		RepeatPassword: "new-password",
	})

	assert.NoError(t, err)
}

func TestUserService_UploadImage_RejectsUnsupportedType(t *testing.T) {
	s, _ := newService(t)

	err := s.UploadImage(context.Background(), "user-1", "payload.svg", "image/svg+xml", []byte("<svg/>"))

	assert.Equal(t, apperror.ErrInvalidImageType, err)
}

func TestUserService_UploadImage_RejectsOversize(t *testing.T) {
	s, _ := newService(t)

	err := s.UploadImage(context.Background(), "user-1", "big.jpg", "image/jpeg", make([]byte, 5<<20+1))

	assert.Equal(t, apperror.ErrImageTooLarge, err)
}

func TestUserService_UploadImage_ReplacesPreviousImage(t *testing.T) {
	s, m := newService(t)

	oldImage := "old.jpg"
	user := &domain.User{ID: "user-1", Image: &oldImage}

	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
	m.images.EXPECT().Save(gomock.Any(), gomock.Any(), "image/png", gomock.Any()).Return(nil)
	m.repo.EXPECT().UpdateImage(gomock.Any(), "user-1", gomock.Any()).Return(nil)
	// Old file removal failing must not fail the upload.
	m.images.EXPECT().Delete(gomock.Any(), oldImage).Return(errors.New("disk error"))

	err := s.UploadImage(context.Background(), "user-1", "avatar.png", "image/png", []byte{0x89, 0x50})

	assert.NoError(t, err)
}

func TestUserService_UploadImage_CleansUpWhenMetadataUpdateFails(t *testing.T) {
	s, m := newService(t)

	user := &domain.User{ID: "user-1"}
	var savedName string

	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
	m.images.EXPECT().Save(gomock.Any(), gomock.Any(), "image/jpeg", gomock.Any()).DoAndReturn(
		func(_ context.Context, name, _ string, _ []byte) error {
			savedName = name
			return nil
		})
	m.repo.EXPECT().UpdateImage(gomock.Any(), "user-1", gomock.Any()).Return(errors.New("db down"))
	m.images.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name string) error {
			assert.Equal(t, savedName, name)
			return nil
		})

	err := s.UploadImage(context.Background(), "user-1", "avatar.jpg", "image/jpeg", []byte{0xff, 0xd8})

	assert.EqualError(t, err, "db down")
}

func TestUserService_ResetImage_DeletesStoredFile(t *testing.T) {
	s, m := newService(t)

	image := "avatar.png"
	user := &domain.User{ID: "user-1", Image: &image}

	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
	m.images.EXPECT().Delete(gomock.Any(), image).Return(nil)
	m.repo.EXPECT().UpdateImage(gomock.Any(), "user-1", nil).Return(nil)

	err := s.ResetImage(context.Background(), "user-1")

	assert.NoError(t, err)
}

func TestUserService_CloseProfile_Success(t *testing.T) {
	s, m := newService(t)

	image := "avatar.png"
	user := &domain.User{ID: "user-1", Image: &image}

	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(user, nil)
	m.repo.EXPECT().Delete(gomock.Any(), "user-1").Return(int64(1), nil)
	m.images.EXPECT().Delete(gomock.Any(), image).Return(nil)

	err := s.CloseProfile(context.Background(), "user-1")

	assert.NoError(t, err)
}

func TestUserService_CloseProfile_AlreadyDeletedBehavesLikeNeverExisting(t *testing.T) {
	s, m := newService(t)

	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(nil, nil)
	firstErr := s.CloseProfile(context.Background(), "user-1")

	m.repo.EXPECT().GetByID(gomock.Any(), "user-1").Return(nil, nil)
	secondErr := s.CloseProfile(context.Background(), "user-1")

	assert.Equal(t, apperror.ErrUserNotFound, firstErr)
	assert.Equal(t, firstErr, secondErr)
}

func TestUserService_GetInfo_NotFound(t *testing.T) {
	s, m := newService(t)

	m.repo.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, nil)

	_, err := s.GetInfo(context.Background(), "gone")

	assert.Equal(t, apperror.ErrUserNotFound, err)
}
