package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = `id, user_id, title, description, status, created_at, updated_at`

type TodosRepo struct {
	pool    *pgxpool.Pool
	metrics *observability.Prom
}

func NewTodosRepo(pool *pgxpool.Pool, metrics *observability.Prom) *TodosRepo {
	return &TodosRepo{pool: pool, metrics: metrics}
}

func (r *TodosRepo) Create(ctx context.Context, userID int64, req todo.CreateTodoRequest) (todo.Todo, error) {
	var t todo.Todo

	err := r.metrics.ObserveDB("todos.create", func() error {
		return scanTodo(r.pool.QueryRow(
			ctx,
			`INSERT INTO todos (user_id, title, description, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING `+todoColumns,
			userID,
			req.Title,
			req.Description,
		), &t)
	})

	if err != nil {
		return todo.Todo{}, err
	}

	return t, nil
}

func (r *TodosRepo) GetByID(ctx context.Context, id int64) (todo.Todo, error) {
	var t todo.Todo

	err := r.metrics.ObserveDB("todos.get_by_id", func() error {
		return scanTodo(r.pool.QueryRow(
			ctx,
			`SELECT `+todoColumns+` FROM todos WHERE id = $1`,
			id,
		), &t)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return todo.Todo{}, todo.ErrNotFound
		}
		return todo.Todo{}, err
	}

	return t, nil
}

func (r *TodosRepo) ListByUser(ctx context.Context, userID int64) ([]todo.Todo, error) {
	output := make([]todo.Todo, 0)

	err := r.metrics.ObserveDB("todos.list_by_user", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT `+todoColumns+`
			FROM todos
			WHERE user_id = $1
			ORDER BY id ASC`,
			userID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var t todo.Todo

			if err := scanTodo(rows, &t); err != nil {
				return err
			}

			output = append(output, t)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// Update is a partial update: absent patch fields keep their stored value.
func (r *TodosRepo) Update(ctx context.Context, id int64, req todo.EditTodoRequest) (todo.Todo, error) {
	var t todo.Todo

	err := r.metrics.ObserveDB("todos.update", func() error {
		return scanTodo(r.pool.QueryRow(
			ctx,
			`UPDATE todos
			SET title = COALESCE($2, title),
				description = COALESCE($3, description),
				status = COALESCE($4, status),
				updated_at = NOW()
			WHERE id = $1
			RETURNING `+todoColumns,
			id,
			req.Title,
			req.Description,
			req.Status,
		), &t)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return todo.Todo{}, todo.ErrNotFound
		}
		return todo.Todo{}, err
	}

	return t, nil
}

func (r *TodosRepo) Delete(ctx context.Context, id int64) (todo.Todo, error) {
	var t todo.Todo

	err := r.metrics.ObserveDB("todos.delete", func() error {
		return scanTodo(r.pool.QueryRow(
			ctx,
			`DELETE FROM todos WHERE id = $1 RETURNING `+todoColumns,
			id,
		), &t)
	})

	if err != nil {
		// if no rows were deleted as a result return a not found error
		if errors.Is(err, pgx.ErrNoRows) {
			return todo.Todo{}, todo.ErrNotFound
		}
		return todo.Todo{}, err
	}

	return t, nil
}

func scanTodo(row pgx.Row, t *todo.Todo) error {
	return row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}
