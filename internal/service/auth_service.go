package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudha-chandrann/settleupbackend/internal/domain"
	"github.com/sudha-chandrann/settleupbackend/internal/email"
	"github.com/sudha-chandrann/settleupbackend/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("account already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrCodeInvalid        = errors.New("invalid verification code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email verification required")
	ErrEmailSendFailure   = errors.New("email send failed")
	ErrRateLimited        = errors.New("rate limited")
)

const codeTTL = 3 * time.Minute

// AuthService owns the credential lifecycle: registration, verification code
// issuance and matching, and password login. All state lives in the user
// repository; the service itself holds none.
type AuthService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	emailSender email.Sender
	codeLimiter CodeRateLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, emailSender email.Sender, codeLimiter CodeRateLimiter) *AuthService {
	if codeLimiter == nil {
		codeLimiter = NewCodeRateLimiter(codeTTL, 3)
	}
	return &AuthService{
		logger:      logger,
		users:       users,
		emailSender: emailSender,
		codeLimiter: codeLimiter,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an unverified account. An unverified account already
// holding the email is discarded (stale signup reclaims the address); a
// verified one wins with ErrEmailTaken. The unique index on email is the
// final arbiter when two registrations race.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	name := strings.TrimSpace(input.Name)
	emailAddr := normalizeEmail(input.Email)
	password := input.Password
	if err := validateRegistration(name, emailAddr, password); err != nil {
		return domain.User{}, err
	}

	existing, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		if existing.Verified {
			return domain.User{}, ErrEmailTaken
		}
		if err := s.users.Delete(ctx, existing.ID); err != nil {
			return domain.User{}, err
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        emailAddr,
		PasswordHash: string(hashBytes),
		Verified:     false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	return user.Public(), nil
}

// RequestVerificationCode issues a fresh 6-digit code, overwriting any prior
// one, and mails it. The persisted code is not rolled back on a delivery
// failure; a retry simply overwrites it.
func (s *AuthService) RequestVerificationCode(ctx context.Context, emailAddr string) error {
	if s.users == nil {
		return errors.New("auth service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return newValidationError("email", "email is required")
	}

	if s.codeLimiter != nil && !s.codeLimiter.Allow(emailAddr) {
		return ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	expiresAt := time.Now().UTC().Add(codeTTL)
	if err := s.users.SetVerificationCode(ctx, user.ID, code, expiresAt); err != nil {
		return err
	}

	if s.emailSender == nil {
		return ErrEmailSendFailure
	}
	if err := s.emailSender.SendVerificationCode(ctx, emailAddr, code, expiresAt); err != nil {
		if s.logger != nil {
			s.logger.Warn("send verification code failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return ErrEmailSendFailure
	}
	return nil
}

// VerifyEmail matches the supplied code against the outstanding one and flips
// the account to verified. The transition is one-way; a second attempt with
// the same code fails ErrAlreadyVerified.
func (s *AuthService) VerifyEmail(ctx context.Context, emailAddr, code string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	code = strings.TrimSpace(code)
	if emailAddr == "" || code == "" {
		return domain.User{}, newValidationError("email", "email and code are required")
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if user.Verified {
		return domain.User{}, ErrAlreadyVerified
	}

	if !user.HasActiveCode(time.Now().UTC()) {
		return domain.User{}, ErrCodeExpired
	}
	if user.VerificationCode != code {
		return domain.User{}, ErrCodeInvalid
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return domain.User{}, err
	}

	user.Verified = true
	user.VerificationCode = ""
	user.VerificationCodeExpiresAt = nil
	return user.Public(), nil
}

// Login checks the password against the stored hash. Unknown email and wrong
// password produce the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if !user.Verified {
		return domain.User{}, ErrNotVerified
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user.Public(), nil
}

// CurrentUser resolves an account id to its live record, without the secret
// hash. Unverified accounts are rejected so a token outlives its account's
// verified state by at most one request.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	if !user.Verified {
		return domain.User{}, ErrNotVerified
	}
	return user.Public(), nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
