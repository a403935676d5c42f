package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meltemk/skyticket/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.UserAccount) error
	FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	FindByCredentials(ctx context.Context, email, password string) (*domain.UserAccount, error)
	// EnsureDefault seeds the single simulated account when the table is
	// empty, so a fresh install can log in immediately.
	EnsureDefault(ctx context.Context) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.UserAccount) error {
	_, err := r.db.Exec(ctx, `INSERT INTO simulated_users (first_name, last_name, email, password, government_id, phone)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.FirstName, user.LastName, user.Email, user.Password, user.GovernmentID, user.Phone)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailInUse
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	row := r.db.QueryRow(ctx, `SELECT first_name, last_name, email, password, government_id, phone FROM simulated_users WHERE email=$1`, email)
	return scanUser(row)
}

func (r *PGUserRepository) FindByCredentials(ctx context.Context, email, password string) (*domain.UserAccount, error) {
	row := r.db.QueryRow(ctx, `SELECT first_name, last_name, email, password, government_id, phone FROM simulated_users WHERE email=$1 AND password=$2`, email, password)
	return scanUser(row)
}

func (r *PGUserRepository) EnsureDefault(ctx context.Context) error {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM simulated_users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.Create(ctx, &domain.UserAccount{
		FirstName:    "Meltem",
		LastName:     "Koran",
		Email:        "meltemkoran49@gmail.com",
		Password:     "123456",
		GovernmentID: "10893456672",
		Phone:        "5326872134",
	})
}

func scanUser(row pgx.Row) (*domain.UserAccount, error) {
	var u domain.UserAccount
	if err := row.Scan(&u.FirstName, &u.LastName, &u.Email, &u.Password, &u.GovernmentID, &u.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
