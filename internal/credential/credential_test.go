package credential_test

import (
	"testing"
	"time"

	"github.com/mile-mijatovic/address-book/internal/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_RoundTrip(t *testing.T) {
	h := credential.NewHasher(4)

	hash, err := h.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, h.Verify("s3cret-password", hash))
	assert.False(t, h.Verify("wrong-password", hash))
}

func TestHasher_DistinctPasswords(t *testing.T) {
	h := credential.NewHasher(4)

	hash, err := h.Hash("first")
	require.NoError(t, err)

	other, err := h.Hash("second")
	require.NoError(t, err)

	assert.False(t, h.Verify("first", other))
	assert.False(t, h.Verify("second", hash))
}

func TestHasher_OutOfRangeCostFallsBack(t *testing.T) {
	h := credential.NewHasher(99)

	hash, err := h.Hash("password")
	require.NoError(t, err)
	assert.True(t, h.Verify("password", hash))
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := credential.NewTokenService("test-secret", 15)

	token, err := ts.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	ts := credential.NewTokenService("test-secret", 15)
	other := credential.NewTokenService("other-secret", 15)

	token, err := ts.Issue("user-123")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	ts := credential.NewTokenService("test-secret", -1)

	token, err := ts.Issue("user-123")
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	ts := credential.NewTokenService("test-secret", 15)

	_, err := ts.Verify("not-a-jwt")
	assert.Error(t, err)
}

func TestTokenService_Expiry(t *testing.T) {
	ts := credential.NewTokenService("test-secret", 30)
	assert.Equal(t, 30*time.Minute, ts.Expiry())
}
