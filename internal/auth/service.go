package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mercadoscout/internal/models"
	"mercadoscout/logger"
	"mercadoscout/pkg/apierr"
)

// hashCost matches the cost the account base was created with
const hashCost = 12

// UserStore is the slice of the user repository the auth service needs
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (string, error)
}

// Credentials are returned on successful registration or login
type Credentials struct {
	Token  string
	UserID string
}

// Service registers and authenticates users
type Service struct {
	users  UserStore
	tokens *TokenManager
	log    *logger.Logger
}

// NewService creates an auth service
func NewService(users UserStore, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		log:    logger.ForComponent("auth"),
	}
}

// Register creates an account with a salted one-way password hash, an empty
// favorites set, and issues a token
func (s *Service) Register(ctx context.Context, email, password, name string) (*Credentials, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apierr.New(apierr.KindDuplicateEmail, "email is already registered")
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, apierr.Wrap(apierr.KindInternal, "user lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindInternal, "password hashing failed", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		Favorites:    []models.FavoriteProduct{},
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		// the unique index may race a concurrent registration past the lookup
		if errors.Is(err, models.ErrDuplicateEmail) {
			return nil, apierr.New(apierr.KindDuplicateEmail, "email is already registered")
		}
		return nil, apierr.Wrap(apierr.KindInternal, "user insert failed", err)
	}

	token, err := s.tokens.Issue(id, email)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("account created")
	return &Credentials{Token: token, UserID: id}, nil
}

// Login verifies credentials and issues a token. The same error is returned
// whether the email is unknown or the password mismatches.
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, apierr.New(apierr.KindInvalidCredentials, "invalid email or password")
		}
		return nil, apierr.Wrap(apierr.KindInternal, "user lookup failed", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apierr.New(apierr.KindInvalidCredentials, "invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: token, UserID: user.ID.Hex()}, nil
}
