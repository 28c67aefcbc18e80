package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
	"github.com/ayabeauty/storefront/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when the submitted password does not match the admin secret.
	ErrInvalidCredentials = domainauth.ErrInvalidCredentials
	// ErrTooManyAttempts is matched by *TooManyAttemptsError via errors.Is.
	ErrTooManyAttempts = errors.New("too many login attempts")
	// ErrSessionNotFound is returned by Session when the token is unknown, revoked or expired.
	ErrSessionNotFound = domainauth.ErrSessionNotFound

	errSecretRequired = errors.New("admin secret is required")
)

// TooManyAttemptsError reports a blocked client and how long it must wait.
type TooManyAttemptsError struct {
	RetryAfter time.Duration
}

func (e *TooManyAttemptsError) Error() string {
	return fmt.Sprintf("too many login attempts, retry after %s", e.RetryAfter)
}

// Is lets errors.Is(err, ErrTooManyAttempts) match.
func (e *TooManyAttemptsError) Is(target error) bool {
	return target == ErrTooManyAttempts
}

// LoginPolicy groups the credential and throttling settings of AuthService.
type LoginPolicy struct {
	// Secret is the shared admin password. Only a bcrypt hash of its digest is retained.
	Secret string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Limiter is optional; nil disables throttling.
	Limiter ports.LoginLimiter
	// FailureDelay is slept after every rejected password.
	FailureDelay time.Duration
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Tokens ports.TokenStore // Required
	Policy LoginPolicy
	Logger *slog.Logger // Optional
}

// AuthService checks the admin password and manages session tokens.
type AuthService struct {
	tokens       ports.TokenStore
	limiter      ports.LoginLimiter
	secretHash   []byte
	failureDelay time.Duration
	logger       *slog.Logger
	sleep        func(ctx context.Context, d time.Duration) error
}

// NewAuthService constructs an AuthService. It fails when the secret is empty or cannot be hashed.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Tokens == nil {
		panic("AuthService: Tokens is required")
	}
	hash, err := HashSecret(opts.Policy.Secret, opts.Policy.BcryptCost)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		tokens:       opts.Tokens,
		limiter:      opts.Policy.Limiter,
		secretHash:   hash,
		failureDelay: opts.Policy.FailureDelay,
		logger:       logger.With("component", "auth_service"),
		sleep:        sleepContext,
	}, nil
}

// HashSecret returns the bcrypt hash of the SHA-256 digest of secret.
// Hashing the digest keeps inputs longer than bcrypt's 72 byte limit significant.
func HashSecret(secret string, cost int) ([]byte, error) {
	if secret == "" {
		return nil, errSecretRequired
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(secretDigest(secret), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	return hash, nil
}

// VerifySecret reports whether password matches a hash produced by HashSecret.
func VerifySecret(hash []byte, password string) bool {
	if password == "" || len(hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, secretDigest(password)) == nil
}

func secretDigest(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return []byte(hex.EncodeToString(sum[:]))
}

// LoginInput groups parameters for a login attempt.
type LoginInput struct {
	Password string
	// ClientKey identifies the caller for throttling, typically the client IP.
	ClientKey string
}

// LoginResult contains the session issued by a successful login.
type LoginResult struct {
	Session domainauth.Session
}

// Login verifies the password and issues a new session token.
// A wrong password returns ErrInvalidCredentials and issues nothing.
// A throttled caller gets a *TooManyAttemptsError before the password is checked.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	key := input.ClientKey
	if key == "" {
		key = "unknown"
	}

	if err := s.checkLimit(ctx, key); err != nil {
		return nil, err
	}

	if !VerifySecret(s.secretHash, input.Password) {
		s.recordFailure(ctx, key)
		s.logger.WarnContext(ctx, "admin login rejected", "client", key)
		if err := s.sleep(ctx, s.failureDelay); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "reset login limiter failed", "client", key, "error", err)
		}
	}

	session, err := s.tokens.Issue(ctx)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	s.logger.InfoContext(ctx, "admin login succeeded",
		"client", key, "token", domainauth.ShortToken(session.Token), "expires_at", session.ExpiresAt)
	return &LoginResult{Session: session}, nil
}

func (s *AuthService) checkLimit(ctx context.Context, key string) error {
	if s.limiter == nil {
		return nil
	}
	decision, err := s.limiter.Allow(ctx, key)
	if err != nil {
		// Fail open on limiter errors.
		s.logger.WarnContext(ctx, "login limiter unavailable", "client", key, "error", err)
		return nil
	}
	if !decision.Allowed {
		s.logger.WarnContext(ctx, "admin login throttled", "client", key, "retry_after", decision.RetryAfter)
		return &TooManyAttemptsError{RetryAfter: decision.RetryAfter}
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	if _, err := s.limiter.RecordFailure(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "record login failure failed", "client", key, "error", err)
	}
}

// Check reports whether token belongs to a live session.
// Store errors are logged and reported as unauthenticated.
func (s *AuthService) Check(ctx context.Context, token string) bool {
	_, err := s.Session(ctx, token)
	return err == nil
}

// Session returns the stored session for a valid token, or ErrSessionNotFound.
// Store errors are logged and also reported as ErrSessionNotFound.
func (s *AuthService) Session(ctx context.Context, token string) (*domainauth.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	sess, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			s.logger.ErrorContext(ctx, "session lookup failed", "token", domainauth.ShortToken(token), "error", err)
		}
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// Logout revokes token. An empty or unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return fmt.Errorf("revoke session token: %w", err)
	}
	s.logger.InfoContext(ctx, "admin logout", "token", domainauth.ShortToken(token))
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
