package guest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrGuestNotFound   = apperror.NotFound("guest not found")
	ErrGuestEmailTaken = apperror.Conflict("guest email already registered")
	ErrInvalidEmail    = apperror.Validation("invalid guest email")
)

type CreateInput struct {
	Name     string
	Email    string
	Password string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*Guest, error)
	Get(ctx context.Context, id uint) (*Guest, error)
	List(ctx context.Context) ([]Guest, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Guest, error) {
	g, err := newGuest(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGuestEmailTaken
		}
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return g, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Guest, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *service) List(ctx context.Context) ([]Guest, error) {
	return s.repo.List(ctx)
}

// FindOrCreate looks a guest up by email and creates an invite-only guest
// when none exists. The name defaults to the local part of the email.
func FindOrCreate(ctx context.Context, repo Repository, email, name string) (*Guest, bool, error) {
	g, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return g, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("find guest: %w", err)
	}

	g, err = newGuest(name, email, "")
	if err != nil {
		return nil, false, err
	}
	if err := repo.Create(ctx, g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, ErrGuestEmailTaken
		}
		return nil, false, fmt.Errorf("create guest: %w", err)
	}
	return g, true, nil
}

func newGuest(name, email, password string) (*Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return nil, ErrInvalidEmail
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email[:at]
	}

	if password == "" {
		password = uuid.NewString()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash guest credential: %w", err)
	}

	return &Guest{Name: name, Email: email, PasswordHash: string(hash)}, nil
}
