package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/canulcua123-source/vista-boss/internal/common"
	"github.com/canulcua123-source/vista-boss/internal/domain/model"
)

// MemoryUserRepository is a map-backed repository.UserRepository for tests.
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User

	// DeleteErr, when set, is returned by Delete to simulate storage-level
	// failures such as related-record constraint violations.
	DeleteErr error
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: map[int64]model.User{}}
}

// Seed inserts users directly, assigning ids and timestamps when absent.
func (r *MemoryUserRepository) Seed(users ...model.User) []model.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.ID == 0 {
			u.ID = r.nextID
			r.nextID++
		} else if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now()
		}
		r.users[u.ID] = u
		out = append(out, u)
	}
	return out
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		u.HashedPassword = ""
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Handle == user.Handle {
			return fmt.Errorf("user with given email or handle already exists: %w", common.ErrConflict)
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryUserRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Handle == handle {
			return true, nil
		}
	}
	return false, nil
}

// RecordingCache implements service.ListCache in memory and counts calls.
type RecordingCache struct {
	mu          sync.Mutex
	payload     []byte
	Sets        int
	Gets        int
	Invalidates int
}

func (c *RecordingCache) Get(ctx context.Context) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	if c.payload == nil {
		return nil, false, nil
	}
	return c.payload, true, nil
}

func (c *RecordingCache) Set(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets++
	c.payload = payload
	return nil
}

func (c *RecordingCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidates++
	c.payload = nil
	return nil
}

// RecordingNotifier captures the transient messages a screen raises.
type RecordingNotifier struct {
	Successes []string
	Errors    []string
}

func (n *RecordingNotifier) Success(message string) {
	n.Successes = append(n.Successes, message)
}

func (n *RecordingNotifier) Error(message string) {
	n.Errors = append(n.Errors, message)
}
