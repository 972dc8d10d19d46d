package handlers_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/geocoder89/todohub/internal/actorctx"
	"github.com/geocoder89/todohub/internal/domain/todo"
	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test
func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupRouter mounts h behind a stand-in for the auth middleware. callerID 0
// leaves the request unauthenticated.
func setupRouter(method, path string, callerID int64, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, func(c *gin.Context) {
		if callerID != 0 {
			ctx := actorctx.WithCaller(c.Request.Context(), actorctx.Caller{ID: callerID, Email: "caller@example.com"})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}, h)

	return r
}

type fakeAuthService struct {
	signupFn func(ctx context.Context, email, password string) (user.User, error)
	loginFn  func(ctx context.Context, email, password string) (user.AccessToken, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, email, password string) (user.User, error) {
	if f.signupFn != nil {
		return f.signupFn(ctx, email, password)
	}
	return user.User{}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (user.AccessToken, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}
	return user.AccessToken{}, nil
}

type fakeUserService struct {
	meFn   func(ctx context.Context, callerID int64) (user.User, error)
	editFn func(ctx context.Context, callerID int64, patch user.Patch) (user.User, error)
}

func (f *fakeUserService) Me(ctx context.Context, callerID int64) (user.User, error) {
	if f.meFn != nil {
		return f.meFn(ctx, callerID)
	}
	return user.User{}, nil
}

func (f *fakeUserService) Edit(ctx context.Context, callerID int64, patch user.Patch) (user.User, error) {
	if f.editFn != nil {
		return f.editFn(ctx, callerID, patch)
	}
	return user.User{}, nil
}

type fakeTodoService struct {
	createFn func(ctx context.Context, callerID int64, req todo.CreateTodoRequest) (todo.Todo, error)
	listFn   func(ctx context.Context, callerID int64) ([]todo.Todo, error)
	getFn    func(ctx context.Context, callerID, todoID int64) (todo.Todo, error)
	editFn   func(ctx context.Context, callerID, todoID int64, req todo.EditTodoRequest) (todo.Todo, error)
	deleteFn func(ctx context.Context, callerID, todoID int64) (todo.Todo, error)
}

func (f *fakeTodoService) Create(ctx context.Context, callerID int64, req todo.CreateTodoRequest) (todo.Todo, error) {
	if f.createFn != nil {
		return f.createFn(ctx, callerID, req)
	}
	return todo.Todo{}, nil
}

func (f *fakeTodoService) List(ctx context.Context, callerID int64) ([]todo.Todo, error) {
	if f.listFn != nil {
		return f.listFn(ctx, callerID)
	}
	return []todo.Todo{}, nil
}

func (f *fakeTodoService) Get(ctx context.Context, callerID, todoID int64) (todo.Todo, error) {
	if f.getFn != nil {
		return f.getFn(ctx, callerID, todoID)
	}
	return todo.Todo{}, nil
}

func (f *fakeTodoService) Edit(ctx context.Context, callerID, todoID int64, req todo.EditTodoRequest) (todo.Todo, error) {
	if f.editFn != nil {
		return f.editFn(ctx, callerID, todoID, req)
	}
	return todo.Todo{}, nil
}

func (f *fakeTodoService) Delete(ctx context.Context, callerID, todoID int64) (todo.Todo, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, callerID, todoID)
	}
	return todo.Todo{}, nil
}
