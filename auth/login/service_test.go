package login

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authErrors "github.com/lMelkorl/b2bminiui/auth/errors"
	"github.com/lMelkorl/b2bminiui/auth/models"
	"github.com/lMelkorl/b2bminiui/internal/utils"
)

func newTestService(t *testing.T) (*Service, []byte) {
	t.Helper()
	priv, pub, err := utils.GenerateKeyPairPEM()
	require.NoError(t, err)

	svc, err := NewService([]models.User{
		{ID: "1", Email: "Admin@Example.com", Name: "Admin", Role: "admin", Password: "Kuyum!2024-Yonetim"},
		{ID: "2", Email: "viewer@example.com", Name: "Viewer", Role: "viewer", Password: "1234"},
	}, ServiceConfig{PrivateKey: priv, Issuer: "test", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	return svc, pub
}

func TestLogin(t *testing.T) {
	svc, pub := newTestService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Email: " admin@example.com ", Password: "Kuyum!2024-Yonetim"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Admin", resp.User.Name)
	assert.Equal(t, "admin", resp.User.Role)

	claims, err := utils.ValidateToken(pub, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Admin@Example.com", claims.Claim.Email)
	assert.Equal(t, "test", claims.Issuer)
	assert.Equal(t, UserContext(models.User{ID: "1"}).UserID, claims.Claim.UserID)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, authErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, authErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Password: "x"})
	assert.ErrorIs(t, err, authErrors.ErrMissingField)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "admin@example.com"})
	assert.ErrorIs(t, err, authErrors.ErrMissingField)
}

func TestLoginWithoutKey(t *testing.T) {
	svc, err := NewService([]models.User{{ID: "1", Email: "a@b.c", Password: "pw"}}, ServiceConfig{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Email: "a@b.c", Password: "pw"})
	assert.ErrorIs(t, err, authErrors.ErrTokenGeneration)
}

func TestNewServiceRejectsUserWithoutPassword(t *testing.T) {
	_, err := NewService([]models.User{{ID: "1", Email: "a@b.c"}}, ServiceConfig{BcryptCost: bcrypt.MinCost})
	assert.Error(t, err)
}

func TestPasswordsAreNotKept(t *testing.T) {
	svc, _ := newTestService(t)
	for _, u := range svc.users {
		assert.Empty(t, u.Password)
		assert.NotEmpty(t, u.PasswordHash)
	}
}

func TestUserContextIsStable(t *testing.T) {
	a := UserContext(models.User{ID: "1"})
	b := UserContext(models.User{ID: "1"})
	c := UserContext(models.User{ID: "2"})
	assert.Equal(t, a.UserID, b.UserID)
	assert.NotEqual(t, a.UserID, c.UserID)
}
