package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/todohub/internal/domain/user"
)

type UsersRepo struct {
	mu      sync.RWMutex
	nextID  int64
	items   map[int64]user.User
	byEmail map[string]int64
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:   make(map[int64]user.User),
		byEmail: make(map[string]int64),
	}
}

func (r *UsersRepo) Create(ctx context.Context, email, hash string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return user.User{}, user.ErrEmailTaken
	}

	r.nextID++
	now := time.Now().UTC()
	u := user.User{
		ID:        r.nextID,
		Email:     email,
		Hash:      hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.items[u.ID] = u
	r.byEmail[email] = u.ID

	return cloneUser(u), nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return cloneUser(r.items[id]), nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UsersRepo) Update(ctx context.Context, id int64, patch user.Patch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if patch.FirstName != nil {
		u.FirstName = cloneStr(patch.FirstName)
	}
	if patch.LastName != nil {
		u.LastName = cloneStr(patch.LastName)
	}
	u.UpdatedAt = time.Now().UTC()
	r.items[id] = u

	return cloneUser(u), nil
}

// Ping satisfies the readiness check; the in-memory store is always up.
func (r *UsersRepo) Ping(ctx context.Context) error {
	return nil
}

func cloneUser(u user.User) user.User {
	u.FirstName = cloneStr(u.FirstName)
	u.LastName = cloneStr(u.LastName)
	return u
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
