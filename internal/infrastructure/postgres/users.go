package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/go-board-api/internal/domain"
)

// UserRepo persists users.
type UserRepo struct {
	db pool
}

func NewUserRepo(db pool) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, username, password_hash, verified,
	verification_token, verification_expires_at, refresh_token, created_at, updated_at`

// Create inserts a new, unverified user. A uniqueness violation on email or
// username comes back as a *domain.ConflictError naming the colliding field.
func (r *UserRepo) Create(ctx context.Context, email, username, passwordHash, verificationToken string, verificationExpiry time.Time) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, verification_token, verification_expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		email, username, passwordHash, verificationToken, verificationExpiry,
	)
	u, err := scanUser(row)
	if err != nil {
		if conflict := conflictField(err); conflict != "" {
			return nil, &domain.ConflictError{Field: conflict}
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email, password hash included.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return r.one(row, "get user by email")
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return r.one(row, "get user by id")
}

// GetByRefreshToken retrieves the user whose stored refresh token equals the
// presented one.
func (r *UserRepo) GetByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token)
	return r.one(row, "get user by refresh token")
}

// SetVerified performs the one-way verification transition as a single
// conditional update: the token must match, be unexpired, and the user must
// still be unverified. Returns false when zero rows matched; the caller
// cannot tell which condition failed.
func (r *UserRepo) SetVerified(ctx context.Context, token string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET verified = TRUE, verification_token = NULL, verification_expires_at = NULL, updated_at = now()
		WHERE verification_token = $1
		  AND verification_expires_at > now()
		  AND verified = FALSE`,
		token,
	)
	if err != nil {
		return false, fmt.Errorf("set verified: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetRefreshToken overwrites the mirrored refresh token; nil clears it.
func (r *UserRepo) SetRefreshToken(ctx context.Context, userID int64, token *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`,
		userID, token,
	)
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	return nil
}

// SweepExpiredVerifications nulls out the verification token and expiry for
// unverified users whose window has passed. Idempotent; returns the number of
// rows affected.
func (r *UserRepo) SweepExpiredVerifications(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET verification_token = NULL, verification_expires_at = NULL, updated_at = now()
		WHERE verified = FALSE
		  AND verification_token IS NOT NULL
		  AND verification_expires_at <= now()`,
	)
	if err != nil {
		return 0, fmt.Errorf("sweep expired verifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *UserRepo) one(row pgx.Row, op string) (*domain.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Verified,
		&u.VerificationToken,
		&u.VerificationExpiry,
		&u.RefreshToken,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// conflictField maps a unique-violation error to the colliding column name,
// or "" when err is not a uniqueness violation. Discrimination relies on the
// driver's structured error code and constraint name, never on message text.
func conflictField(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return ""
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return "email"
	case "users_username_key":
		return "username"
	case "users_verification_token_key":
		return "verification token"
	default:
		return "record"
	}
}
