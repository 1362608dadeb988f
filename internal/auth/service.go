package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/internal/apperror"
	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = apperror.Conflict("email already registered")
	ErrInvalidCredentials  = apperror.Unauthorized("invalid credentials")
	ErrInvalidRefreshToken = apperror.Unauthorized("invalid refresh token")
	ErrInvalidResetToken   = apperror.Validation("invalid or expired token")
	ErrUserNotFound        = apperror.NotFound("user not found")
	ErrUserHasEvents       = apperror.Conflict("delete your events before deleting the account")
)

// Mailer is the outbound mail collaborator.
type Mailer interface {
	Send(to, subject, body string) error
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*TokenPair, *User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetUserByID(ctx context.Context, userID uint) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, userID uint) error

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

type service struct {
	repo          Repository
	tokens        TokenStore
	mailer        Mailer
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
	frontendURL   string
}

func NewService(r Repository, tokens TokenStore, mailer Mailer, cfg *config.Config) Service {
	return &service{
		repo:          r,
		tokens:        tokens,
		mailer:        mailer,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
		resetTTL:      time.Duration(cfg.ResetTokenTTLMin) * time.Minute,
		frontendURL:   strings.TrimRight(cfg.FrontendURL, "/"),
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(ctx context.Context, in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, err := s.signToken(user, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.signToken(user, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, user, nil
}

func (s *service) signToken(user *User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := ParseUserID(refreshToken, s.refreshSecret)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	return s.signToken(user, s.accessSecret, s.accessTTL)
}

// ParseUserID validates an HS256 token and returns its user_id claim.
func ParseUserID(tokenStr, secret string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, errors.New("user_id missing in token")
	}
	return uint(userIDFloat), nil
}

// =============================
// Forgot / Reset Password
// =============================

// RequestPasswordReset never reveals whether the email exists.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token := uuid.NewString()
	if err := s.tokens.Save(ctx, resetKey(token), strconv.FormatUint(uint64(user.ID), 10), s.resetTTL); err != nil {
		return fmt.Errorf("could not save reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	body := fmt.Sprintf("Hello %s,\n\nUse the link below to choose a new password. It expires in %d minutes.\n\n%s\n\nIf you did not ask for this, ignore this email.",
		user.Name, int(s.resetTTL.Minutes()), link)

	if err := s.mailer.Send(user.Email, "Reset your password", body); err != nil {
		utils.Log.Warn("password reset email failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token string, newPassword string) error {
	val, err := s.tokens.Take(ctx, resetKey(token))
	if err != nil {
		return ErrInvalidResetToken
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, uint(userID), string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// =============================
// Users
// =============================

func (s *service) GetUserByID(ctx context.Context, userID uint) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *service) DeleteUser(ctx context.Context, userID uint) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUserHasEvents
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func resetKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "reset_token:" + hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
