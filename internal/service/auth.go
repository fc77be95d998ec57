package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/deskhive/deskhive/internal/domain"
)

// AuthService resolves credentials and request identities into actors.
type AuthService struct {
	userRepo UserRepositoryInterface
}

func NewAuthService(userRepo UserRepositoryInterface) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// HashPassword returns the hex sha256 digest stored in the users table.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Login checks the credentials and returns the matching active user.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	hash := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(user.PasswordHash)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	return user, nil
}

// ResolveActor loads the user behind a request identity and builds its
// capability set. Disabled accounts do not authenticate.
func (s *AuthService) ResolveActor(ctx context.Context, userID string) (domain.Actor, *domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.Actor{}, nil, err
	}
	if !user.IsActive {
		return domain.Actor{}, nil, domain.ErrAccountDisabled
	}
	return domain.NewActor(user.ID, user.Role), user, nil
}
