package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

type fakeUserRepo struct {
	user       *models.User
	lastLogins int
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error {
	f.lastLogins++
	return nil
}

func newAuthFixture(t *testing.T, user *models.User) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{user: user}
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "attendance-api",
	})
	return svc, repo
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginIssuesTokenWithScopeClaims(t *testing.T) {
	regionID := int64(1)
	groupID := int64(100)
	svc, repo := newAuthFixture(t, &models.User{
		ID:           "u-1",
		Email:        "leader@example.org",
		PasswordHash: hashedPassword(t, "secret123"),
		FullName:     "Group Leader",
		Role:         models.RoleSmallGroup,
		Active:       true,
		RegionID:     &regionID,
		GroupID:      &groupID,
	})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "leader@example.org", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastLogins)
	assert.Equal(t, models.RoleSmallGroup, res.User.Role)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	require.NotNil(t, claims.RegionID)
	assert.Equal(t, int64(1), *claims.RegionID)
	require.NotNil(t, claims.GroupID)
	assert.Equal(t, int64(100), *claims.GroupID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, &models.User{
		ID:           "u-1",
		Email:        "leader@example.org",
		PasswordHash: hashedPassword(t, "secret123"),
		Active:       true,
	})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "leader@example.org", Password: "wrong"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.org", Password: "secret123"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _ := newAuthFixture(t, &models.User{
		ID:           "u-1",
		Email:        "leader@example.org",
		PasswordHash: hashedPassword(t, "secret123"),
		Active:       false,
	})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "leader@example.org", Password: "secret123"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc, _ := newAuthFixture(t, &models.User{
		ID:           "u-1",
		Email:        "leader@example.org",
		PasswordHash: hashedPassword(t, "secret123"),
		Active:       true,
	})
	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "leader@example.org", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.AccessToken + "x")
	assert.Error(t, err)
}
