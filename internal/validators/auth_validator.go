package validators

import (
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"regexp"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passwordRegex = regexp.MustCompile(`^[0-9a-zA-Z@#$%^&+=!]{8,}$`)
)

func ValidateUser(user *models.User) []error {
	var errors []error
	if user == nil {
		errors = append(errors, errs.ErrInvalidUser)
		return errors
	}

	if user.Email == "" || !ValidateEmail(user.Email) {
		errors = append(errors, errs.ErrInvalidEmail)
	}

	if !ValidatePassword(user.Password) {
		errors = append(errors, errs.ErrInvalidPassword)
	}

	if len(user.FirstName) < 2 {
		errors = append(errors, errs.ErrFirstName)
	}

	if len(user.LastName) < 2 {
		errors = append(errors, errs.ErrLastName)
	}
	return errors
}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword requires at least 8 characters drawn from digits, letters
// and @#$%^&+=! with at least one digit and one letter.
func ValidatePassword(password string) bool {
	if !passwordRegex.MatchString(password) {
		return false
	}
	var hasDigit, hasLetter bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	return hasDigit && hasLetter
}
