package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const userColumns = `id, email, hash, first_name, last_name, created_at, updated_at`

type UsersRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, metrics *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, metrics: metrics}
}

func (r *UsersRepo) Create(ctx context.Context, email, hash string) (user.User, error) {
	var u user.User

	err := r.metrics.ObserveDB("users.create", func() error {
		return scanUser(r.pool.QueryRow(
			ctx,
			`INSERT INTO users (email, hash, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			RETURNING `+userColumns,
			email,
			hash,
		), &u)
	})

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.metrics.ObserveDB("users.get_by_email", func() error {
		return scanUser(r.pool.QueryRow(
			ctx,
			`SELECT `+userColumns+`
			FROM users
			WHERE email = $1`,
			email,
		), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.metrics.ObserveDB("users.get_by_id", func() error {
		return scanUser(r.pool.QueryRow(
			ctx,
			`SELECT `+userColumns+`
			FROM users
			WHERE id = $1`,
			id,
		), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// Update applies only the non-nil patch fields.
func (r *UsersRepo) Update(ctx context.Context, id int64, patch user.Patch) (user.User, error) {
	var u user.User

	err := r.metrics.ObserveDB("users.update", func() error {
		return scanUser(r.pool.QueryRow(
			ctx,
			`UPDATE users
			SET first_name = COALESCE($2, first_name),
				last_name = COALESCE($3, last_name),
				updated_at = NOW()
			WHERE id = $1
			RETURNING `+userColumns,
			id,
			patch.FirstName,
			patch.LastName,
		), &u)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanUser(row pgx.Row, u *user.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.Hash,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
