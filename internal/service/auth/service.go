package auth

import (
	"log/slog"
	"time"

	"github.com/heartmarshall/twin-backend/internal/domain"
)

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(subject string, role string) (string, error)
	ValidateAccessToken(token string) (string, string, error)
	TTL() time.Duration
}

// Service implements admin authentication for a single site.
type Service struct {
	log          *slog.Logger
	jwt          jwtManager
	site         domain.SiteKey
	passwordHash string
	now          func() time.Time
}

// NewService creates a new auth service instance. An empty passwordHash
// disables password login; tokens minted elsewhere are still accepted.
func NewService(logger *slog.Logger, jwt jwtManager, site domain.SiteKey, passwordHash string) *Service {
	return &Service{
		log:          logger.With("service", "auth"),
		jwt:          jwt,
		site:         site,
		passwordHash: passwordHash,
		now:          time.Now,
	}
}
