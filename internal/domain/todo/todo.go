package todo

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("todo not found")
	ErrAccessDenied = errors.New("access to resources denied")
)

type Todo struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitnil,min=1,max=2000"`
}

// a patch payload: only the fields present in the body are applied.
type EditTodoRequest struct {
	Title       *string `json:"title" binding:"omitnil,min=1,max=200"`
	Description *string `json:"description" binding:"omitnil,min=1,max=2000"`
	Status      *string `json:"status" binding:"omitnil,min=1,max=50"`
}

// Empty reports whether the patch carries no fields.
func (r EditTodoRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil
}

// Apply returns t with the patch fields copied over it.
func (r EditTodoRequest) Apply(t Todo) Todo {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Description != nil {
		d := *r.Description
		t.Description = &d
	}
	if r.Status != nil {
		s := *r.Status
		t.Status = &s
	}
	return t
}
