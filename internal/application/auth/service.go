package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-board-api/internal/domain"
	"github.com/go-board-api/internal/pkg/password"
	pkgtoken "github.com/go-board-api/internal/pkg/token"
	"github.com/go-board-api/internal/pkg/validate"
)

// RegisterResult reports the outcome of a registration. EmailSent is carried
// separately because mail dispatch failure does not fail the registration:
// the user record exists either way.
type RegisterResult struct {
	User      *domain.User
	EmailSent bool
	Message   string
}

// TokenPair is an access/refresh token pair plus the authenticated user.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	VerifyEmail(ctx context.Context, token string) error
	Me(ctx context.Context, userID int64) (*domain.User, error)
	CleanupExpiredVerifications(ctx context.Context) (int64, error)
}

type userStore interface {
	Create(ctx context.Context, email, username, passwordHash, verificationToken string, verificationExpiry time.Time) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.User, error)
	SetVerified(ctx context.Context, token string) (bool, error)
	SetRefreshToken(ctx context.Context, userID int64, token *string) error
	SweepExpiredVerifications(ctx context.Context) (int64, error)
}

type tokenCodec interface {
	IssueAccess(userID int64) (string, error)
	IssueRefresh(userID int64) (string, error)
	VerifyRefresh(token string) (int64, bool)
}

type mailer interface {
	SendVerificationEmail(to, username, token string) error
}

type service struct {
	repo               userStore
	tokens             tokenCodec
	mailer             mailer
	verificationExpiry time.Duration
}

type ServiceDeps struct {
	UserRepo           userStore
	Tokens             tokenCodec
	Mailer             mailer
	VerificationExpiry time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:               deps.UserRepo,
		tokens:             deps.Tokens,
		mailer:             deps.Mailer,
		verificationExpiry: deps.VerificationExpiry,
	}
}

// Register validates all inputs before touching storage; a validation failure
// never creates a partial user.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	verificationToken, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, req.Email, req.Username, hash, verificationToken, time.Now().Add(s.verificationExpiry))
	if err != nil {
		return nil, err
	}

	result := &RegisterResult{User: u, EmailSent: true, Message: "registration successful, check your email to verify your account"}
	if err := s.mailer.SendVerificationEmail(u.Email, u.Username, verificationToken); err != nil {
		// The account exists; only the email failed. Never log the token itself.
		slog.Warn("failed to send verification email", "user_id", u.ID, "err", err)
		result.EmailSent = false
		result.Message = "registration successful, but the verification email could not be sent; contact support"
	}
	return result, nil
}

// Login authenticates by email and password. The three failure causes keep
// distinct messages; all of them wrap ErrUnauthorized.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*TokenPair, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("no such email: %w", domain.ErrUnauthorized)
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, fmt.Errorf("wrong password: %w", domain.ErrUnauthorized)
	}
	if !u.Verified {
		return nil, fmt.Errorf("email not verified: %w", domain.ErrUnauthorized)
	}
	return s.issuePair(ctx, u)
}

// Refresh rotates the token pair. Beyond the codec check, the presented token
// must equal the currently stored one; that equality is what makes logout and
// later logins revoke a cryptographically still-valid token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	subject, ok := s.tokens.VerifyRefresh(refreshToken)
	if !ok {
		return nil, fmt.Errorf("invalid or expired refresh token: %w", domain.ErrUnauthorized)
	}
	u, err := s.repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil || u.ID != subject {
		return nil, fmt.Errorf("invalid or expired refresh token: %w", domain.ErrUnauthorized)
	}
	return s.issuePair(ctx, u)
}

// Logout clears the stored refresh token. Idempotent: logging out twice
// succeeds both times.
func (s *service) Logout(ctx context.Context, userID int64) error {
	return s.repo.SetRefreshToken(ctx, userID, nil)
}

// VerifyEmail performs the one-way unverified-to-verified transition. The
// guard is a single conditional update in the store; "already verified",
// "wrong token" and "expired" are deliberately indistinguishable.
func (s *service) VerifyEmail(ctx context.Context, token string) error {
	ok, err := s.repo.SetVerified(ctx, token)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("invalid or expired verification token: %w", domain.ErrNotFound)
	}
	return nil
}

// Me returns the caller's own user record.
func (s *service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// CleanupExpiredVerifications sweeps stale verification tokens. Safe to run
// concurrently and repeatedly; invoked externally, never self-scheduled.
func (s *service) CleanupExpiredVerifications(ctx context.Context) (int64, error) {
	return s.repo.SweepExpiredVerifications(ctx)
}

// issuePair mints a fresh access/refresh pair and mirrors the refresh token
// on the user row, superseding whatever was stored before.
func (s *service) issuePair(ctx context.Context, u *domain.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRefreshToken(ctx, u.ID, &refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: u}, nil
}
