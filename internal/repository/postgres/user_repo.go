package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventhub/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, phone, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.Phone, u.Password, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, username, firstname, lastname)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, p.UserID, p.Username, p.Firstname, p.Lastname)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserWithProfile, error) {
	query := `
		SELECT u.id, u.email, u.phone, u.created_at, u.updated_at,
		       pr.username, pr.firstname, pr.lastname
		FROM users u
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE u.id = $1
	`
	u := &domain.User{}
	var username, firstname, lastname sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Phone, &u.CreatedAt, &u.UpdatedAt,
		&username, &firstname, &lastname,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.UserWithProfile{
		User: u,
		Profile: &domain.Profile{
			UserID:    u.ID,
			Username:  username.String,
			Firstname: firstname.String,
			Lastname:  lastname.String,
		},
	}, nil
}

// GetByEmailOrPhone matches the login union payload: exactly one of email or
// phone is non-empty. The password hash is included for the comparison step.
func (r *userRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	query := `
		SELECT id, email, phone, password, created_at, updated_at
		FROM users
		WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2)
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, email, phone).Scan(
		&u.ID, &u.Email, &u.Phone, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
