package accounts

import (
	"context"
	"errors"

	"github.com/meltemk/skyticket/internal/domain"
	"github.com/meltemk/skyticket/internal/repository"
	"github.com/meltemk/skyticket/internal/session"
)

type UseCase interface {
	Register(ctx context.Context, user domain.UserAccount) error
	Login(ctx context.Context, sessionID, email, password string) (*domain.UserAccount, error)
	Logout(ctx context.Context, sessionID string) error
	LoggedInEmail(ctx context.Context, sessionID string) (string, error)
}

type Service struct {
	users    repository.UserRepository
	sessions session.Repository
}

func NewService(users repository.UserRepository, sessions session.Repository) *Service {
	return &Service{users: users, sessions: sessions}
}

func (s *Service) Register(ctx context.Context, user domain.UserAccount) error {
	if user.Email == "" {
		return errors.New("email is required")
	}
	if user.Password == "" {
		return errors.New("password is required")
	}

	existing, err := s.users.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailInUse
	}
	return s.users.Create(ctx, &user)
}

// Login checks the plaintext credential pair and marks the session as
// authenticated. Credential hardening is explicitly out of scope for this
// simulated membership area.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (*domain.UserAccount, error) {
	user, err := s.users.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.sessions.Set(ctx, sessionID, session.KeyIsLoggedIn, "true"); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sessionID, session.KeyLoggedInEmail, user.Email); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the whole session, the in-progress booking included.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

// LoggedInEmail returns the authenticated account's email, or
// ErrNotLoggedIn when the session carries no auth flags.
func (s *Service) LoggedInEmail(ctx context.Context, sessionID string) (string, error) {
	loggedIn, err := s.sessions.Get(ctx, sessionID, session.KeyIsLoggedIn)
	if err != nil {
		return "", err
	}
	if loggedIn != "true" {
		return "", domain.ErrNotLoggedIn
	}
	email, err := s.sessions.Get(ctx, sessionID, session.KeyLoggedInEmail)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", domain.ErrNotLoggedIn
	}
	return email, nil
}

var _ UseCase = (*Service)(nil)
