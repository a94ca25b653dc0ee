package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	portsrepo "github.com/dahira-app/dahira_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	baseRepository
}

// NewUserRepository creates a new repository for user data.
func NewUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &userRepository{baseRepository{pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

// SaveUser inserts a newly registered user.
func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = string(role)
	}

	query := `
		INSERT INTO users (user_id, username, name, password_hash, roles, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.Name,
		user.PasswordHash,
		roles,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: username %q", apperrors.ErrDuplicate, user.Username)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

func (r *userRepository) findUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	query := `
		SELECT user_id, username, name, password_hash, roles, created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE ` + where + `;
	`
	var user domain.User
	var roles []string

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.UserID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&roles,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Roles = make([]domain.UserRole, len(roles))
	for i, role := range roles {
		user.Roles[i] = domain.UserRole(role)
	}
	return &user, nil
}

// FindUserByID retrieves a user by their ID.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, "user_id = $1", userID)
}

// FindUserByUsername retrieves a user by their login name.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, "username = $1", username)
}
