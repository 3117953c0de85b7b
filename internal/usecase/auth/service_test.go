package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/boardroom-simulator/errors"
	"github.com/johnquangdev/boardroom-simulator/pkg/jwt"
)

const testOperatorKey = "boardroom-dev-key"

func newTestService() (*Service, *jwt.Manager) {
	manager := jwt.NewManager("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
	return NewService(manager, testOperatorKey, zap.NewNop()), manager
}

func TestIssueTokenPairMintsValidTokens(t *testing.T) {
	svc, manager := newTestService()

	pair, err := svc.IssueTokenPair(testOperatorKey, "Morgan")
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := manager.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Morgan", claims.Name)
	assert.Equal(t, OperatorRole, claims.Role)

	operatorID, err := manager.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, claims.OperatorID, operatorID, "both tokens name the same operator")
}

func TestIssueTokenPairRejectsWrongKey(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.IssueTokenPair("not-the-key", "Morgan")
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_AUTH_INVALID_API_KEY, appErr.Code)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	svc, manager := newTestService()

	pair, err := svc.IssueTokenPair(testOperatorKey, "Morgan")
	require.NoError(t, err)
	issued, err := manager.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, refreshed.RefreshToken, "refresh token survives the exchange")

	claims, err := manager.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, issued, claims.OperatorID)
	assert.Equal(t, OperatorRole, claims.Role)
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Refresh("not-a-token")
	assert.Error(t, err)

	// an access token is signed with the wrong secret for the refresh path
	pair, err := svc.IssueTokenPair(testOperatorKey, "Morgan")
	require.NoError(t, err)
	_, err = svc.Refresh(pair.AccessToken)
	assert.Error(t, err)
}
