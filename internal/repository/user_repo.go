package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkease/internal/db"
)

type PostgresUserRepository struct {
	DB *sql.DB
}

func NewPostgresUserRepository(database *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: database}
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *db.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, phone, vehicle_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Phone, user.VehicleNumber,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating user %s: %w", user.Email, err)
	}
	return nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id int) (*db.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, where string, arg interface{}) (*db.User, error) {
	var user db.User
	query := `SELECT id, name, email, password_hash, role, phone, vehicle_number, created_at FROM users ` + where
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Phone, &user.VehicleNumber, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &user, nil
}
