package auth_test

import (
	"testing"
	"time"

	"booth-pos-backend/internal/auth"
	"booth-pos-backend/internal/model"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "token-test-secret"

func TestIssueAndParseToken(t *testing.T) {
	eventID := 5
	claims := model.Claims{
		Subject: "vendor",
		Role:    model.RoleVendor,
		Access:  model.AccessEvent,
		EventID: &eventID,
	}

	token, err := auth.IssueToken(testSecret, time.Hour, claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, claims.Subject, parsed.Subject)
	assert.Equal(t, claims.Role, parsed.Role)
	assert.Equal(t, claims.Access, parsed.Access)
	require.NotNil(t, parsed.EventID)
	assert.Equal(t, eventID, *parsed.EventID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	claims := model.Claims{Subject: "admin", Role: model.RoleAdmin, Access: model.AccessAll}

	token, err := auth.IssueToken(testSecret, time.Hour, claims)
	require.NoError(t, err)

	_, err = auth.ParseToken("other-secret", token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestParseToken_Expired(t *testing.T) {
	claims := model.Claims{Subject: "admin", Role: model.RoleAdmin, Access: model.AccessAll}

	token, err := auth.IssueToken(testSecret, -time.Minute, claims)
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
