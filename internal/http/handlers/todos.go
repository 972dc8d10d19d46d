package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/todohub/internal/config"
	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/gin-gonic/gin"
)

type TodoService interface {
	Create(ctx context.Context, callerID int64, req todo.CreateTodoRequest) (todo.Todo, error)
	List(ctx context.Context, callerID int64) ([]todo.Todo, error)
	Get(ctx context.Context, callerID, todoID int64) (todo.Todo, error)
	Edit(ctx context.Context, callerID, todoID int64, req todo.EditTodoRequest) (todo.Todo, error)
	Delete(ctx context.Context, callerID, todoID int64) (todo.Todo, error)
}

type TodosHandler struct {
	svc TodoService
	log *slog.Logger
}

func NewTodosHandler(svc TodoService, log *slog.Logger) *TodosHandler {
	return &TodosHandler{svc: svc, log: log}
}

func (h *TodosHandler) CreateTodo(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	var req todo.CreateTodoRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	t, err := h.svc.Create(cctx, caller.ID, req)
	if err != nil {
		respondFault(ctx, h.log, "Could not create todo", err)
		return
	}

	ctx.JSON(http.StatusCreated, t)
}

func (h *TodosHandler) ListTodos(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	todos, err := h.svc.List(cctx, caller.ID)
	if err != nil {
		respondFault(ctx, h.log, "Could not list todos", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, todos)
}

// GetTodoById answers 200 null for both a missing todo and one owned by
// another user.
func (h *TodosHandler) GetTodoById(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	id, ok := todoIDParam(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	t, err := h.svc.Get(cctx, caller.ID, id)
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}
		respondFault(ctx, h.log, "Could not fetch todo", err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, t)
}

func (h *TodosHandler) EditTodoById(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	id, ok := todoIDParam(ctx)
	if !ok {
		return
	}

	var req todo.EditTodoRequest
	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	t, err := h.svc.Edit(cctx, caller.ID, id, req)
	if err != nil {
		if errors.Is(err, todo.ErrAccessDenied) {
			RespondForbidden(ctx, "access_denied", "Access to resources denied")
			return
		}
		respondFault(ctx, h.log, "Could not update todo", err)
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TodosHandler) DeleteTodoById(ctx *gin.Context) {
	caller, ok := callerOrAbort(ctx)
	if !ok {
		return
	}

	id, ok := todoIDParam(ctx)
	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	t, err := h.svc.Delete(cctx, caller.ID, id)
	if err != nil {
		if errors.Is(err, todo.ErrAccessDenied) {
			RespondForbidden(ctx, "access_denied", "Access to resources denied")
			return
		}
		respondFault(ctx, h.log, "Could not delete todo", err)
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func todoIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(ctx, http.StatusBadRequest, "invalid_id", "Todo id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}
