package services

import (
	"testing"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationService_RegisterGrantsSignupCredits(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "  New.User@Example.com ")

	assert.Equal(t, "new.user@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.Empty(t, user.Password)

	balance, err := env.credits.Balance(user.ID, enums.CREDIT_TYPE_TEXT)
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)
}

func TestAuthenticationService_RegisterRejects(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "taken@example.com")

	_, errors := env.auth.Register(&models.User{FirstName: "Grace", LastName: "Hopper", Email: "taken@example.com", Password: "password123"})
	assert.Equal(t, []error{errs.ErrUserAlreadyExists}, errors)

	_, errors = env.auth.Register(&models.User{FirstName: "Grace", LastName: "Hopper", Email: "fresh@example.com", Password: "short"})
	assert.Contains(t, errors, errs.ErrInvalidPassword)
}

func TestAuthenticationService_Login(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "login@example.com")

	response, errors := env.auth.Login(&models.LoginRequestBody{Email: "LOGIN@example.com", Password: "password123"})
	require.Empty(t, errors)
	assert.Equal(t, user.ID, response.User.ID)

	claims, err := utils.VerifyToken(response.Token, env.config.JwtKey())
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)

	_, errors = env.auth.Login(&models.LoginRequestBody{Email: "login@example.com", Password: "password999"})
	assert.Equal(t, []error{errs.ErrWrongPassword}, errors)
}

func TestAuthenticationService_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "profile@example.com")

	profile, err := env.auth.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", profile.FirstName)

	_, err = env.auth.GetProfile(user.ID + 1)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}
