package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pixelmart/storefront/internal/user/domain"
	"github.com/pixelmart/storefront/pkg/apperror"
	"github.com/pixelmart/storefront/pkg/auth"
)

type Service struct {
	log    *slog.Logger
	repo   UserRepository
	tokens *auth.Manager
}

func NewService(log *slog.Logger, repo UserRepository, tokens *auth.Manager) *Service {
	return &Service{log: log, repo: repo, tokens: tokens}
}

// Session is what register and login hand back to the client.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, name, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Session{}, apperror.New(apperror.CodeInvalid, "email is required")
	}
	if len(password) < 6 {
		return Session{}, apperror.New(apperror.CodeInvalid, "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return Session{}, err
	}
	s.log.Info("user registered", "user_id", u.ID, "email", email)
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.Code(err) == apperror.CodeNotFound {
			return Session{}, apperror.New(apperror.CodeUnauthorized, "invalid email or password")
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, apperror.New(apperror.CodeUnauthorized, "invalid email or password")
	}
	return s.session(u)
}

func (s *Service) Me(ctx context.Context, userID string) (domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) session(u domain.User) (Session, error) {
	token, err := s.tokens.Issue(auth.Identity{UserID: u.ID, Email: u.Email, Admin: u.Admin})
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: u}, nil
}
