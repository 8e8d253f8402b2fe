package user

import (
	"context"
	"database/sql"
)

type Repository interface {
	Create(ctx context.Context, params RegisterParams, hashedPassword string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, username, password, first_name, last_name, role, enabled, created_at`

func (r *repository) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.Enabled,
		&u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, params RegisterParams, hashedPassword string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, username, password, first_name, last_name, role, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING `+userColumns+`
	`,
		params.Email,
		params.Username,
		hashedPassword,
		params.FirstName,
		params.LastName,
		RoleCustomer,
	)
	return r.scanUser(row)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return r.scanUser(row)
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return r.scanUser(row)
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}
