package services

import (
	"context"

	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/domain/user"
)

// UserStore is implemented by repo/postgres.UsersRepo and repo/memory.UsersRepo.
// Create reports user.ErrEmailTaken on a duplicate email; lookups report
// user.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, email, hash string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	Update(ctx context.Context, id int64, patch user.Patch) (user.User, error)
}

// TodoStore reports todo.ErrNotFound for a missing id. It does no ownership
// filtering of its own.
type TodoStore interface {
	Create(ctx context.Context, userID int64, req todo.CreateTodoRequest) (todo.Todo, error)
	GetByID(ctx context.Context, id int64) (todo.Todo, error)
	ListByUser(ctx context.Context, userID int64) ([]todo.Todo, error)
	Update(ctx context.Context, id int64, req todo.EditTodoRequest) (todo.Todo, error)
	Delete(ctx context.Context, id int64) (todo.Todo, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

type TokenIssuer interface {
	GenerateAccessToken(userID int64, email string) (string, error)
}
