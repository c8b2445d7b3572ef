package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/twin-backend/internal/auth"
	"github.com/heartmarshall/twin-backend/internal/domain"
)

// Login exchanges the admin password for an access token scoped to the site.
// Returns ErrUnauthorized if the password is wrong or password login is disabled.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if s.passwordHash == "" {
		s.log.WarnContext(ctx, "password login attempted but no admin hash is configured")
		return nil, domain.ErrUnauthorized
	}

	if err := auth.CheckPassword(s.passwordHash, input.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.InfoContext(ctx, "admin login rejected")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login check password: %w", err)
	}

	issuedAt := s.now()
	token, err := s.jwt.GenerateAccessToken(s.site.String(), auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	s.log.InfoContext(ctx, "admin logged in")

	return &AuthResult{
		AccessToken: token,
		ExpiresAt:   issuedAt.Add(s.jwt.TTL()),
	}, nil
}

// ValidateToken validates an access token and returns its subject.
// Tokens for another site or without the admin role are rejected.
func (s *Service) ValidateToken(ctx context.Context, token string) (string, error) {
	subject, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	if subject != s.site.String() {
		s.log.WarnContext(ctx, "token issued for another site", "subject", subject)
		return "", domain.ErrUnauthorized
	}
	if role != auth.RoleAdmin {
		return "", domain.ErrForbidden
	}
	return subject, nil
}
