package services

import (
	"log/slog"
	"nodeBoard/configs"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"
	"nodeBoard/internal/utils"
	"nodeBoard/internal/validators"
	"strings"
	"time"
)

type AuthenticationService struct {
	authRepo      *repositories.AuthenticationRepository
	creditService *CreditService
	config        *configs.Config
}

func NewAuthenticationService(
	authRepo *repositories.AuthenticationRepository,
	creditService *CreditService,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo:      authRepo,
		creditService: creditService,
		config:        config,
	}
}

// Register creates the account and hands out the sign-up credits. A failed
// grant is logged; the account still exists.
func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errors []error
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if as.CheckIfUserExists(user.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	user.PasswordHash = password
	user.Password = ""

	created, createErrs := as.authRepo.CreateUser(user)
	if len(createErrs) > 0 {
		return nil, createErrs
	}

	signup := as.config.CreditAmounts("credits.signup")
	if err := as.creditService.Grant(created.ID, signup, models.CreditReference{Reference: "signup"}); err != nil {
		slog.Error("failed to grant sign-up credits", "user_id", created.ID, "error", err)
	}
	return created, nil
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	loginData.Email = strings.ToLower(strings.TrimSpace(loginData.Email))
	user, err := as.authRepo.Login(loginData)
	if err != nil {
		errors = append(errors, err...)
		return nil, errors
	}

	token, jwtErr := utils.CreateJwtToken(
		user,
		as.config.JwtKey(),
		time.Now().Add(as.config.JwtExpiration()),
	)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user.ToProfileResponse(),
		Token: token,
	}, nil
}

func (as *AuthenticationService) CheckIfUserExists(email string) bool {
	return as.authRepo.CheckIfUserExists(email) != nil
}

func (as *AuthenticationService) GetProfile(userID uint) (*models.ProfileResponse, error) {
	user, err := as.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return user.ToProfileResponse(), nil
}
