package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/todohub/internal/domain/todo"
)

// TodoService enforces that callers only see and change their own todos.
// Absent and foreign todos are indistinguishable to the caller.
type TodoService struct {
	todos TodoStore
}

func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

func (s *TodoService) Create(ctx context.Context, callerID int64, req todo.CreateTodoRequest) (todo.Todo, error) {
	return s.todos.Create(ctx, callerID, req)
}

func (s *TodoService) List(ctx context.Context, callerID int64) ([]todo.Todo, error) {
	return s.todos.ListByUser(ctx, callerID)
}

// Get returns todo.ErrNotFound for a missing id and for a todo owned by
// someone else.
func (s *TodoService) Get(ctx context.Context, callerID, todoID int64) (todo.Todo, error) {
	t, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return todo.Todo{}, err
	}
	if t.UserID != callerID {
		return todo.Todo{}, todo.ErrNotFound
	}
	return t, nil
}

func (s *TodoService) Edit(ctx context.Context, callerID, todoID int64, req todo.EditTodoRequest) (todo.Todo, error) {
	t, err := s.owned(ctx, callerID, todoID)
	if err != nil {
		return todo.Todo{}, err
	}

	if req.Empty() {
		return t, nil
	}

	updated, err := s.todos.Update(ctx, todoID, req)
	if err != nil {
		// deleted between the ownership check and the write
		if errors.Is(err, todo.ErrNotFound) {
			return todo.Todo{}, todo.ErrAccessDenied
		}
		return todo.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, callerID, todoID int64) (todo.Todo, error) {
	if _, err := s.owned(ctx, callerID, todoID); err != nil {
		return todo.Todo{}, err
	}

	deleted, err := s.todos.Delete(ctx, todoID)
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return todo.Todo{}, todo.ErrAccessDenied
		}
		return todo.Todo{}, fmt.Errorf("delete todo: %w", err)
	}
	return deleted, nil
}

func (s *TodoService) owned(ctx context.Context, callerID, todoID int64) (todo.Todo, error) {
	t, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return todo.Todo{}, todo.ErrAccessDenied
		}
		return todo.Todo{}, fmt.Errorf("load todo: %w", err)
	}

	if t.UserID != callerID {
		return todo.Todo{}, todo.ErrAccessDenied
	}
	return t, nil
}
