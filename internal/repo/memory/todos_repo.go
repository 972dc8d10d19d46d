package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/geocoder89/todohub/internal/domain/todo"
)

type TodosRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]todo.Todo
}

func NewTodosRepo() *TodosRepo {
	return &TodosRepo{
		items: make(map[int64]todo.Todo),
	}
}

func (r *TodosRepo) Create(ctx context.Context, userID int64, req todo.CreateTodoRequest) (todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	t := todo.Todo{
		ID:          r.nextID,
		UserID:      userID,
		Title:       req.Title,
		Description: cloneStr(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[t.ID] = t

	return cloneTodo(t), nil
}

func (r *TodosRepo) GetByID(ctx context.Context, id int64) (todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return todo.Todo{}, todo.ErrNotFound
	}
	return cloneTodo(t), nil
}

// ListByUser returns the user's todos in insertion order.
func (r *TodosRepo) ListByUser(ctx context.Context, userID int64) ([]todo.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]todo.Todo, 0)
	for _, t := range r.items {
		if t.UserID == userID {
			out = append(out, cloneTodo(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TodosRepo) Update(ctx context.Context, id int64, req todo.EditTodoRequest) (todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return todo.Todo{}, todo.ErrNotFound
	}

	t = req.Apply(t)
	t.UpdatedAt = time.Now().UTC()
	r.items[id] = t

	return cloneTodo(t), nil
}

func (r *TodosRepo) Delete(ctx context.Context, id int64) (todo.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok {
		return todo.Todo{}, todo.ErrNotFound
	}
	delete(r.items, id)

	return cloneTodo(t), nil
}

func cloneTodo(t todo.Todo) todo.Todo {
	t.Description = cloneStr(t.Description)
	t.Status = cloneStr(t.Status)
	return t
}
