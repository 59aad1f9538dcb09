package services

import (
	"testing"
	"time"

	"warehouse/internal/domain"
	"warehouse/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth() AuthService {
	return AuthService{
		Users:    repositories.NewMemoryUserDirectory(),
		Secret:   []byte("test-secret"),
		TokenTTL: time.Hour,
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestAuth()

	user, token, err := svc.Login("admin@example.com", "admin123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Admin User", user.Name)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, []string{domain.PermissionAll}, user.Permissions)
	assert.NotEmpty(t, token)
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc := newTestAuth()
	_, _, err := svc.Login("  Admin@Example.COM ", "admin123")
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuth()

	_, _, err := svc.Login("admin@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
	assert.EqualError(t, err, "Invalid email or password")
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newTestAuth()

	_, _, unknownErr := svc.Login("nobody@example.com", "whatever")
	_, _, wrongErr := svc.Login("admin@example.com", "wrong")
	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, wrongErr.Error(), unknownErr.Error(), "unknown account and bad password must be indistinguishable")
}

func TestLoginMissingFields(t *testing.T) {
	svc := newTestAuth()
	_, _, err := svc.Login("", "admin123")
	assert.True(t, domain.IsValidation(err))
	_, _, err = svc.Login("admin@example.com", "")
	assert.True(t, domain.IsValidation(err))
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := newTestAuth()

	loginUser, token, err := svc.Login("manager@example.com", "manager123")
	require.NoError(t, err)

	user, echoed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, token, echoed)
	assert.Equal(t, loginUser.ID, user.ID)
	assert.Equal(t, domain.RoleManager, user.Role)
	assert.Contains(t, user.Permissions, domain.PermInventoryEdit)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuth()

	for _, token := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		_, _, err := svc.ValidateToken(token)
		assert.True(t, domain.IsUnauthorized(err), "token %q should be rejected", token)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestAuth()
	_, token, err := svc.Login("admin@example.com", "admin123")
	require.NoError(t, err)

	other := svc
	other.Secret = []byte("different-secret")
	_, _, err = other.ValidateToken(token)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestAuth()
	svc.TokenTTL = -time.Minute

	_, token, err := svc.Login("admin@example.com", "admin123")
	require.NoError(t, err)

	_, _, err = svc.ValidateToken(token)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestValidateTokenRejectsDeletedUser(t *testing.T) {
	dir := repositories.NewMemoryUserDirectory()
	svc := AuthService{Users: dir, Secret: []byte("test-secret"), TokenTTL: time.Hour}

	user, token, err := svc.Login("staff@example.com", "staff123")
	require.NoError(t, err)

	require.NoError(t, dir.Delete(user.ID))

	_, _, err = svc.ValidateToken(token)
	assert.True(t, domain.IsUnauthorized(err), "token must die with the account")
}

func TestRefreshIssuesWorkingToken(t *testing.T) {
	svc := newTestAuth()
	_, token, err := svc.Login("admin@example.com", "admin123")
	require.NoError(t, err)

	user, fresh, err := svc.Refresh(token)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh)
	assert.NotEqual(t, token, fresh)
	assert.Equal(t, "Admin User", user.Name)

	_, _, err = svc.ValidateToken(fresh)
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	svc := newTestAuth()

	require.NoError(t, svc.ResetPassword("staff@example.com", "newpass1"))

	_, _, err := svc.Login("staff@example.com", "staff123")
	require.Error(t, err, "old password must stop working")

	_, _, err = svc.Login("staff@example.com", "newpass1")
	assert.NoError(t, err)
}

func TestResetPasswordTooShort(t *testing.T) {
	svc := newTestAuth()
	err := svc.ResetPassword("staff@example.com", "abc")
	assert.True(t, domain.IsValidation(err))
}
