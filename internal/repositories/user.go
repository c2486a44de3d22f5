package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/nimish-23/user-account-service/internal/logger"
	"github.com/nimish-23/user-account-service/internal/models"
)

// Conflict sentinels produced by unique-index violation translation.
// The database constraint is the authoritative uniqueness check; callers
// must treat these as the conflict signal even after a clean pre-check.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// Unique index names from migrations/000001_create_users_table.up.sql.
const (
	usernameUniqueIndex = "users_username_lower_idx"
	emailUniqueIndex    = "users_email_lower_idx"
)

const userColumns = `id, username, email, password_hash, is_admin, created_at, updated_at`

// UserReadRepository provides read access to the users table.
// Username and email comparisons are case-insensitive.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns the user with the given id, or nil if absent.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByEmail returns the user with the given email, or nil if absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`
	return r.getOne(ctx, query, email)
}

// GetByUsername returns the user with the given username, or nil if absent.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`
	return r.getOne(ctx, query, username)
}

// GetByUsernameOrEmail returns a user matching either field, or nil if absent.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2)
		LIMIT 1
	`
	return r.getOne(ctx, query, username, email)
}

// List returns a page of users in creation order.
func (r *UserReadRepository) List(ctx context.Context, offset, limit int) ([]models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	users := make([]models.UserDB, 0, limit)
	err := r.db.SelectContext(ctx, &users, query, limit, offset)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{limit, offset},
		"count", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the total number of users.
func (r *UserReadRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM users`

	var total int64
	err := r.db.GetContext(ctx, &total, query)

	logger.Log.Infow("user query",
		"query", query,
		"result", total,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return total, nil
}

// UserWriteRepository provides write access to the users table.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a new user and returns the generated id.
// A unique-index violation is returned as ErrDuplicateUsername or
// ErrDuplicateEmail.
func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash string, isAdmin bool) (uuid.UUID, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`
	args := []any{username, email, passwordHash, isAdmin}

	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"username", username,
		"email", email,
		"error", err,
	)

	if err != nil {
		return uuid.Nil, translateUniqueViolation(err)
	}
	return id, nil
}

// Update persists the mutable fields of an existing user.
// A unique-index violation is returned as ErrDuplicateUsername or
// ErrDuplicateEmail.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.UserDB) error {
	const query = `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
	`
	args := []any{user.ID, user.Username, user.Email, user.PasswordHash}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", user.ID,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return translateUniqueViolation(err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a user by id.
func (r *UserWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user delete",
		"query", query,
		"user_id", id,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// translateUniqueViolation maps a PostgreSQL unique-index violation to the
// matching conflict sentinel. Other errors pass through unchanged.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case usernameUniqueIndex:
		return ErrDuplicateUsername
	case emailUniqueIndex:
		return ErrDuplicateEmail
	default:
		return err
	}
}
