package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/canulcua123-source/vista-boss/internal/common"
	"github.com/canulcua123-source/vista-boss/internal/common/security"
	"github.com/canulcua123-source/vista-boss/internal/domain/model"
	"github.com/canulcua123-source/vista-boss/internal/testutil"
)

func TestUserService_CreateUser(t *testing.T) {
	repo := testutil.NewMemoryUserRepository()
	svc := NewUserService(repo, nil)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, model.NewUserInput{
		Name: "John Doe", Email: "john@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id, got %+v", user)
	}
	if user.Role != model.RoleMerchant {
		t.Fatalf("empty role should default to merchant, got %q", user.Role)
	}
	if user.Handle != "john-doe" {
		t.Fatalf("expected slugged handle, got %q", user.Handle)
	}
	if user.HashedPassword != "" {
		t.Fatal("hashed password must not leave the service")
	}

	stored, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find stored: %v", err)
	}
	if !security.CheckPasswordHash("secret1", stored.HashedPassword) {
		t.Fatal("stored password should be a bcrypt hash of the input")
	}
}

func TestUserService_CreateUserValidation(t *testing.T) {
	repo := testutil.NewMemoryUserRepository()
	svc := NewUserService(repo, nil)

	_, err := svc.CreateUser(context.Background(), model.NewUserInput{
		Name: "Jo", Email: "a@b.com", Password: "secret1", Role: model.RoleAdmin,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if _, ok := vErr.Fields["nombre"]; !ok {
		t.Fatalf("expected nombre field error, got %v", vErr.Fields)
	}
	if !errors.Is(err, common.ErrValidation) {
		t.Fatal("validation error should unwrap to common.ErrValidation")
	}

	users, _ := repo.List(context.Background())
	if len(users) != 0 {
		t.Fatal("invalid input must never reach storage")
	}
}

func TestUserService_CreateUserHandleCollision(t *testing.T) {
	repo := testutil.NewMemoryUserRepository()
	repo.Seed(model.User{Name: "John Doe", Email: "first@example.com", Handle: "john-doe", Role: model.RoleMerchant})
	svc := NewUserService(repo, nil)

	user, err := svc.CreateUser(context.Background(), model.NewUserInput{
		Name: "John Doe", Email: "second@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Handle == "john-doe" || !strings.HasPrefix(user.Handle, "john-doe-") {
		t.Fatalf("expected disambiguated handle, got %q", user.Handle)
	}
}

func TestUserService_CreateUserDuplicateEmailConflicts(t *testing.T) {
	repo := testutil.NewMemoryUserRepository()
	repo.Seed(model.User{Name: "Maria", Email: "maria@example.com", Handle: "maria", Role: model.RoleMerchant})
	svc := NewUserService(repo, nil)

	_, err := svc.CreateUser(context.Background(), model.NewUserInput{
		Name: "Maria Two", Email: "maria@example.com", Password: "secret1",
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserService_DeleteUserProtectsAdmins(t *testing.T) {
	repo := testutil.NewMemoryUserRepository()
	seeded := repo.Seed(
		model.User{Name: "Root", Email: "root@example.com", Handle: "root", Role: model.RoleAdmin},
		model.User{Name: "Maria", Email: "maria@example.com", Handle: "maria", Role: model.RoleMerchant},
	)
	svc := NewUserService(repo, nil)
	ctx := context.Background()

	err := svc.DeleteUser(ctx, seeded[0].ID)
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("expected forbidden for admin account, got %v", err)
	}
	if _, err := repo.FindByID(ctx, seeded[0].ID); err != nil {
		t.Fatal("admin account must still exist")
	}

	if err := svc.DeleteUser(ctx, seeded[1].ID); err != nil {
		t.Fatalf("delete merchant: %v", err)
	}
	if err := svc.DeleteUser(ctx, seeded[1].ID); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestUserService_ListUsersUsesCache(t *testing.T) {
	repo := testutil.NewMemoryUserRepository()
	repo.Seed(model.User{Name: "Maria", Email: "maria@example.com", Handle: "maria", Role: model.RoleMerchant})
	cache := &testutil.RecordingCache{}
	svc := NewUserService(repo, cache)
	ctx := context.Background()

	first, err := svc.ListUsers(ctx)
	if err != nil || len(first) != 1 {
		t.Fatalf("first list: %v len=%d", err, len(first))
	}
	if cache.Sets != 1 {
		t.Fatalf("cold list should populate the cache, sets=%d", cache.Sets)
	}

	second, err := svc.ListUsers(ctx)
	if err != nil || len(second) != 1 {
		t.Fatalf("second list: %v len=%d", err, len(second))
	}
	if cache.Sets != 1 {
		t.Fatalf("warm list must come from the cache, sets=%d", cache.Sets)
	}
}

func TestUserService_MutationsInvalidateCache(t *testing.T) {
	repo := testutil.NewMemoryUserRepository()
	cache := &testutil.RecordingCache{}
	svc := NewUserService(repo, cache)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, model.NewUserInput{
		Name: "John Doe", Email: "john@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cache.Invalidates != 1 {
		t.Fatalf("create should invalidate the list cache, invalidates=%d", cache.Invalidates)
	}

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if cache.Invalidates != 2 {
		t.Fatalf("delete should invalidate the list cache, invalidates=%d", cache.Invalidates)
	}
}
