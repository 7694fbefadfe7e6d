package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkmu/coursehub/internal/app/models"
)

// UserRepository handles database operations for local user accounts.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, google_id, email, name, photo, is_admin, last_login, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Photo, &u.IsAdmin, &u.LastLogin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return user, nil
}

// UpsertByGoogleID creates the local account on the first OAuth callback for
// a subject id and refreshes name, photo and last_login on every subsequent
// login. The admin flag only ever changes out of band.
func (r *UserRepository) UpsertByGoogleID(ctx context.Context, googleID, email, name, photo string) (*models.User, error) {
	sql := `INSERT INTO users (google_id, email, name, photo, is_admin, last_login)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		ON CONFLICT (google_id) DO UPDATE
			SET name = EXCLUDED.name,
			    photo = EXCLUDED.photo,
			    last_login = NOW()
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, sql, googleID, email, name, photo))
	if err != nil {
		return nil, fmt.Errorf("error upserting user: %w", err)
	}
	return user, nil
}
