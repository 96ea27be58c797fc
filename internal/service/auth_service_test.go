package service

import (
	"context"
	"encoding/json"
	"testing"

	"glacier_storefront/internal/model"
	"glacier_storefront/internal/repository"
	"glacier_storefront/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *repository.MemoryUserRepository, *utils.JWTUtil) {
	t.Helper()
	userRepo := repository.NewMemoryUserRepository()
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	return NewAuthService(userRepo, jwtUtil), userRepo, jwtUtil
}

func TestAuthService_Register(t *testing.T) {
	svc, _, jwtUtil := newAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "Ann", "ann@x.io", "p1secret")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ann", resp.User.Name)
	assert.Equal(t, "ann@x.io", resp.User.Email)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.User.ID)

	// Token must be a valid session token for the new user
	claims, err := jwtUtil.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, model.RoleCustomer, claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "ann@x.io", "p1secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "ann@x.io", "other-secret")
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	// The store must be untouched by the failed registration
	existing, repoErr := userRepo.FindByEmail(ctx, "ann@x.io")
	require.NoError(t, repoErr)
	require.NotNil(t, existing)
	assert.Equal(t, "Ann", existing.Name)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ann", "ann@x.io", "p1secret")
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "ann@x.io", "p1secret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.User.ID, resp.User.ID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@x.io", "whatever")
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "ann@x.io", "p1secret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ann@x.io", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_FailureModesAreDistinguishable(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ann", "ann@x.io", "p1secret")
	require.NoError(t, err)

	_, unknownErr := svc.Login(ctx, "nobody@x.io", "p1secret")
	_, wrongErr := svc.Login(ctx, "ann@x.io", "wrong")
	assert.NotEqual(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_SanitizedUserHasNoCredentialField(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "Ann", "ann@x.io", "p1secret")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "ann@x.io", "p1secret")
	require.NoError(t, err)

	for _, user := range []model.SafeUser{reg.User, login.User} {
		raw, err := json.Marshal(user)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		assert.NotContains(t, fields, "password")
		assert.NotContains(t, fields, "password_hash")
	}
}
