package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Parth2500/Jwt-Auth/internal/common"
	"github.com/Parth2500/Jwt-Auth/internal/domain/model"

	"github.com/google/uuid"
)

// UserRepository persists user records. Implementations return
// common.ErrConflict (wrapped) on a duplicate username or email and
// common.ErrNotFound when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, firstname, lastname, email, hashed_password, birthdate, age,
	location, bio, profile_picture, is_active, created_at, modified_at`

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `INSERT INTO users (` + userColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Birthdate, user.Age, user.Location, user.Bio, user.ProfilePicture, user.IsActive,
		user.CreatedAt, user.ModifiedAt,
	)
	if err != nil {
		if common.IsDuplicateKey(err) {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

// Update rewrites the profile columns of an existing row. Username,
// password hash, activation flag and creation time are left untouched.
func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET firstname = $2, lastname = $3, email = $4, birthdate = $5, age = $6,
	          location = $7, bio = $8, profile_picture = $9, modified_at = $10
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.Birthdate, user.Age,
		user.Location, user.Bio, user.ProfilePicture, user.ModifiedAt,
	)
	if err != nil {
		if common.IsDuplicateKey(err) {
			return fmt.Errorf("email already in use: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.Update: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var modifiedAt sql.NullTime
	err := row.Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash,
		&user.Birthdate, &user.Age, &user.Location, &user.Bio, &user.ProfilePicture, &user.IsActive,
		&user.CreatedAt, &modifiedAt,
	)
	if err != nil {
		return nil, err
	}
	if modifiedAt.Valid {
		user.ModifiedAt = &modifiedAt.Time
	}
	return user, nil
}
