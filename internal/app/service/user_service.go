package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/canulcua123-source/vista-boss/internal/common"
	"github.com/canulcua123-source/vista-boss/internal/common/security"
	"github.com/canulcua123-source/vista-boss/internal/domain/model"
	"github.com/canulcua123-source/vista-boss/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ListCache caches the serialized user collection between mutations.
type ListCache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// ValidationError carries one message per offending field so handlers can
// report them inline.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return common.ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

type UserService struct {
	userRepo repository.UserRepository
	cache    ListCache
}

func NewUserService(userRepo repository.UserRepository, cache ListCache) *UserService {
	return &UserService{userRepo: userRepo, cache: cache}
}

// ListUsers returns the full collection, newest first. Cache round-trips are
// best effort: a failing cache degrades to the database, it never fails the
// request.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	if s.cache != nil {
		payload, hit, err := s.cache.Get(ctx)
		if err != nil {
			log.Printf("user list cache read failed: %v", err)
		} else if hit {
			var users []model.User
			if err := json.Unmarshal(payload, &users); err == nil {
				return users, nil
			}
			log.Printf("user list cache payload corrupt, falling back to database")
		}
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list users: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(users); err == nil {
			if err := s.cache.Set(ctx, payload); err != nil {
				log.Printf("user list cache write failed: %v", err)
			}
		}
	}
	return users, nil
}

func (s *UserService) CreateUser(ctx context.Context, req model.NewUserInput) (*model.User, error) {
	req.Normalize()
	if fields := req.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, common.Errorf("failed to hash password: %w", err)
	}

	handle, err := s.deriveHandle(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:           req.Name,
		Email:          req.Email,
		Handle:         handle,
		HashedPassword: hashedPassword,
		Role:           req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate email/handle
		return nil, common.Errorf("failed to create user: %w", err)
	}

	s.invalidateListCache(ctx)
	user.HashedPassword = ""
	return user, nil
}

// DeleteUser enforces the admin-account protection before touching storage.
// The same rule is enforced in the console, this is the authoritative copy.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return common.Errorf("admin accounts cannot be deleted: %w", common.ErrForbidden)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return common.Errorf("failed to delete user %d: %w", id, err)
	}

	s.invalidateListCache(ctx)
	return nil
}

// deriveHandle slugifies the display name, disambiguating with a short random
// suffix when the slug is taken.
func (s *UserService) deriveHandle(ctx context.Context, name string) (string, error) {
	handle := slug.Make(name)
	exists, err := s.userRepo.HandleExists(ctx, handle)
	if err != nil {
		return "", common.Errorf("failed to check handle: %w", err)
	}
	if exists {
		handle = handle + "-" + uuid.NewString()[:8]
	}
	return handle, nil
}

func (s *UserService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("user list cache invalidation failed: %v", err)
	}
}
