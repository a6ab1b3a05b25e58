package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"codevimarsh/internal/models"
	"codevimarsh/internal/repository"
	"codevimarsh/internal/storage"
	"codevimarsh/pkg/config"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(newTestUserRepo(t))
}

func newTestUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := storage.Open(config.DBConfig{
		Driver:       "sqlite",
		Name:         filepath.Join(t.TempDir(), "users.db"),
		MaxOpenConns: 10,
	})
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return repository.NewUserRepository(db)
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, " Asha ", " Asha@Example.com ", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "asha@example.com" || user.Name != "Asha" || user.Role != models.RoleStudent {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Password == "s3cret-pass" {
		t.Fatalf("password must be stored hashed")
	}

	got, err := svc.Authenticate(ctx, "ASHA@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, got.ID)
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "a@example.com", "pw-123456"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "B", "A@example.com", "pw-654321"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_AuthenticateFailures(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "a@example.com", "right-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "a@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "right-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserService_GetUser(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "A", "a@example.com", "pw-123456")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.GetUser(ctx, user.ID)
	if err != nil || got.Email != "a@example.com" {
		t.Fatalf("GetUser = %+v, %v", got, err)
	}
	if _, err := svc.GetUser(ctx, user.ID+100); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// staleLookupRepo 讓 FindByEmail 永遠查無資料，
// 模擬兩個註冊請求同時通過重複檢查
type staleLookupRepo struct {
	repository.UserRepository
}

func (staleLookupRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func TestUserService_RegisterConcurrentDuplicateHitsUniqueIndex(t *testing.T) {
	svc := NewUserService(staleLookupRepo{newTestUserRepo(t)})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "a@example.com", "pw-123456"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "B", "a@example.com", "pw-654321"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken from unique index, got %v", err)
	}
}
