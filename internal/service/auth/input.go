package auth

import (
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// MaxPasswordLen is bcrypt's input limit in bytes.
const MaxPasswordLen = 72

// LoginInput holds parameters for admin password login.
type LoginInput struct {
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > MaxPasswordLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AuthResult is returned by Login.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
}
