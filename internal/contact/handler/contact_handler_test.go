package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/mile-mijatovic/address-book/internal/contact/domain"
	"github.com/mile-mijatovic/address-book/internal/contact/handler"
	"github.com/mile-mijatovic/address-book/internal/contact/service"
	"github.com/mile-mijatovic/address-book/internal/credential"
	"github.com/mile-mijatovic/address-book/internal/middleware"
	"github.com/mile-mijatovic/address-book/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	sessionName = "session"
	testOwnerID = "owner-1"
)

type testEnv struct {
	app    *fiber.App
	repo   *mocks.MockContactRepository
	tokens *credential.TokenService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	env := &testEnv{
		repo:   mocks.NewMockContactRepository(ctrl),
		tokens: credential.NewTokenService("test-secret", 60),
	}

	env.app = fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(zap.NewNop()),
	})

	handler.RegisterRoutes(env.app,
		handler.NewContactHandler(service.NewContactService(env.repo)),
		middleware.RequireAuth(env.tokens, sessionName))

	return env
}

func (env *testEnv) request(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	token, err := env.tokens.Issue(testOwnerID)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: sessionName, Value: token})

	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func someContact(id string) domain.Contact {
	return domain.Contact{
		ID:      id,
		OwnerID: testOwnerID,
		Details: domain.Details{
			FirstName: "Ana",
			LastName:  "Peric",
			Email:     "ana@example.com",
		},
		Address:   domain.Address{Street: "Main 1", City: "Novi Sad", ZipCode: "21000"},
		CreatedAt: time.Now(),
	}
}

func TestList_WithoutSession(t *testing.T) {
	env := newEnv(t)

	resp, err := env.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/contacts/", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestList_EmptyBook(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().Find(gomock.Any(), testOwnerID, domain.Filter{}, 0, 5).
		Return(nil, nil)
	env.repo.EXPECT().Count(gomock.Any(), testOwnerID, domain.Filter{}).
		Return(int64(0), nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodGet, "/api/contacts/", ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["contacts"])
	_, hasPagination := body["pagination"]
	assert.False(t, hasPagination, "empty list carries no pagination block")
}

func TestList_DefaultsAndPaginationEnvelope(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().Find(gomock.Any(), testOwnerID, domain.Filter{}, 0, 5).
		Return([]domain.Contact{someContact(uuid.New().String())}, nil)
	env.repo.EXPECT().Count(gomock.Any(), testOwnerID, domain.Filter{}).
		Return(int64(1), nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodGet, "/api/contacts/", ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(5), pagination["limit"])
	assert.Equal(t, float64(1), pagination["total"])
}

func TestList_MalformedPageFallsBackToFirst(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().Find(gomock.Any(), testOwnerID, domain.Filter{}, 0, 5).
		Return([]domain.Contact{someContact(uuid.New().String())}, nil)
	env.repo.EXPECT().Count(gomock.Any(), testOwnerID, domain.Filter{}).
		Return(int64(1), nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodGet, "/api/contacts/?page=abc&limit=-3", ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestList_FilterQueryIsPassedThrough(t *testing.T) {
	env := newEnv(t)

	filter := domain.Filter{FirstName: "ana", Email: "example.com"}

	env.repo.EXPECT().Find(gomock.Any(), testOwnerID, filter, 0, 5).
		Return([]domain.Contact{someContact(uuid.New().String())}, nil)
	env.repo.EXPECT().Count(gomock.Any(), testOwnerID, filter).
		Return(int64(1), nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodGet,
		"/api/contacts/?firstName=ana&email=example.com", ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestList_PageBeyondLast(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().Find(gomock.Any(), testOwnerID, domain.Filter{}, 5, 5).
		Return(nil, nil)
	env.repo.EXPECT().Count(gomock.Any(), testOwnerID, domain.Filter{}).
		Return(int64(3), nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodGet, "/api/contacts/?page=2", ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Page 2 was not found.", decodeBody(t, resp)["message"])
}

func TestGetByID_InvalidIdentifier(t *testing.T) {
	env := newEnv(t)

	resp, err := env.app.Test(env.request(t, fiber.MethodGet, "/api/contacts/not-a-uuid", ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Contact id must be a valid identifier.", decodeBody(t, resp)["message"])
}

func TestGetByID_ForeignContactIsNotFound(t *testing.T) {
	env := newEnv(t)

	contactID := uuid.New().String()
	env.repo.EXPECT().GetByID(gomock.Any(), contactID, testOwnerID).Return(nil, nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodGet, "/api/contacts/"+contactID, ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Contact was not found.", decodeBody(t, resp)["message"])
}

func TestAdd_Success(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().EmailExists(gomock.Any(), testOwnerID, "ana@example.com").Return(false, nil)
	env.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *domain.Contact) error {
			assert.Equal(t, testOwnerID, c.OwnerID)
			return nil
		})

	resp, err := env.app.Test(env.request(t, fiber.MethodPost, "/api/contacts/", `{
		"contact": {"firstName": "Ana", "lastName": "Peric", "email": "ana@example.com"},
		"address": {"street": "Main 1", "city": "Novi Sad", "zipCode": "21000"}
	}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Contact was added successfully.", decodeBody(t, resp)["message"])
}

func TestAdd_DuplicateEmail(t *testing.T) {
	env := newEnv(t)

	env.repo.EXPECT().EmailExists(gomock.Any(), testOwnerID, "ana@example.com").Return(true, nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodPost, "/api/contacts/", `{
		"contact": {"firstName": "Ana", "lastName": "Peric", "email": "ana@example.com"},
		"address": {"street": "Main 1", "city": "Novi Sad", "zipCode": "21000"}
	}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Contact with provided email address already exists.",
		decodeBody(t, resp)["message"])
}

func TestAdd_MissingRequiredFields(t *testing.T) {
	env := newEnv(t)

	resp, err := env.app.Test(env.request(t, fiber.MethodPost, "/api/contacts/", `{
		"contact": {"firstName": "Ana"}
	}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	messages, ok := decodeBody(t, resp)["message"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, messages)
}

func TestUpdate_FavoriteToggleShapesTheMessage(t *testing.T) {
	env := newEnv(t)

	contactID := uuid.New().String()

	favorite := true
	updated := someContact(contactID)
	updated.Favorite = true
	env.repo.EXPECT().Update(gomock.Any(), testOwnerID, contactID, domain.Update{Favorite: &favorite}).
		Return(&updated, nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodPatch, "/api/contacts/"+contactID,
		`{"favorite": true}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact was added to favorites.", decodeBody(t, resp)["message"])

	unfavorite := false
	updated.Favorite = false
	env.repo.EXPECT().Update(gomock.Any(), testOwnerID, contactID, domain.Update{Favorite: &unfavorite}).
		Return(&updated, nil)

	resp, err = env.app.Test(env.request(t, fiber.MethodPatch, "/api/contacts/"+contactID,
		`{"favorite": false}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact was removed from favorites.", decodeBody(t, resp)["message"])
}

func TestUpdate_WithoutFavoriteUsesTheGenericMessage(t *testing.T) {
	env := newEnv(t)

	contactID := uuid.New().String()
	updated := someContact(contactID)

	env.repo.EXPECT().Update(gomock.Any(), testOwnerID, contactID, gomock.Any()).
		Return(&updated, nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodPatch, "/api/contacts/"+contactID,
		`{"contact": {"firstName": "Jovana"}}`))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact was updated successfully.", decodeBody(t, resp)["message"])
}

func TestDelete_Success(t *testing.T) {
	env := newEnv(t)

	contactID := uuid.New().String()
	env.repo.EXPECT().Delete(gomock.Any(), contactID, testOwnerID).Return(int64(1), nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodDelete, "/api/contacts/"+contactID, ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact was deleted successfully.", decodeBody(t, resp)["message"])
}

func TestDelete_MissingContact(t *testing.T) {
	env := newEnv(t)

	contactID := uuid.New().String()
	env.repo.EXPECT().Delete(gomock.Any(), contactID, testOwnerID).Return(int64(0), nil)

	resp, err := env.app.Test(env.request(t, fiber.MethodDelete, "/api/contacts/"+contactID, ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Contact was not found.", decodeBody(t, resp)["message"])
}
