package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hairbook/database/repository"
	"hairbook/models"
	"hairbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken means the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials means the username/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrValidation means a registration field is missing or malformed.
	ErrValidation = errors.New("invalid account input")
	// ErrNotFound means the referenced account does not exist.
	ErrNotFound = errors.New("account not found")
)

const tokenTTL = 72 * time.Hour

// AuthResult is returned on successful authentication.
type AuthResult struct {
	Account *models.Account `json:"account"`
	Token   string          `json:"token"`
}

// AccountService is the authentication collaborator: the rest of the system
// never handles raw passwords.
type AccountService interface {
	Register(ctx context.Context, username, password, role string) (*models.Account, error)
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	Revoke(ctx context.Context, accountID string) error
	GetByID(ctx context.Context, accountID string) (*models.Account, error)
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Repo repository.AccountRepository
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return len(s) > 0
}

func (s *DefaultAccountService) Register(ctx context.Context, username, password, role string) (*models.Account, error) {
	if !isAlphanumeric(username) {
		return nil, fmt.Errorf("%w: username must be alphanumeric", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if role != models.RoleClient && role != models.RoleStylist {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.RoleClient, models.RoleStylist)
	}

	existing, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		utils.GetLogger().Error("Register: availability check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	acct := &models.Account{
		ID:           uuid.New().String(),
		Username:     username,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, acct); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return acct, nil
}

func (s *DefaultAccountService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	acct, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if acct == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(acct.ID, acct.Username, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(ctx, acct.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}
	acct.TokenHash = utils.HashToken(token)

	return &AuthResult{Account: acct, Token: token}, nil
}

func (s *DefaultAccountService) Revoke(ctx context.Context, accountID string) error {
	if err := s.Repo.UpdateTokenHash(ctx, accountID, ""); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *DefaultAccountService) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	acct, err := s.Repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrNotFound
	}
	return acct, nil
}
