package service

import (
	"context"
	"errors"
	"testing"

	"ContestSync/internal/config"
	"ContestSync/internal/model"
	"ContestSync/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	nextID  uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newAuthService(repo repository.UserRepository) *AuthService {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTLDays: 7}
	return NewAuthService(repo, cfg, quietLogger())
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "tourist", "tourist@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// 入库的必须是哈希，不能是明文
	stored := repo.byEmail["tourist@example.com"]
	if stored.PasswordHash == "secret123" {
		t.Fatal("密码不应明文入库")
	}

	token, user, err := svc.Login(ctx, "tourist@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "tourist" {
		t.Errorf("username: got=%s", user.Username)
	}

	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != user.ID {
		t.Errorf("token subject: got=%d want=%d", id, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "a", "dup@example.com", "secret123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := svc.Register(ctx, "b", "dup@example.com", "another456")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got=%v want=ErrEmailTaken", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "tourist", "tourist@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong_password", "tourist@example.com", "wrong"},
		{"unknown_email", "nobody@example.com", "secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("got=%v want=ErrInvalidCredentials", err)
			}
		})
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	for _, token := range []string{"", "not.a.token", "eyJhbGciOiJub25lIn0.e30."} {
		if _, err := svc.ParseToken(token); err == nil {
			t.Errorf("非法Token应报错: %q", token)
		}
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "tourist", "tourist@example.com", "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "tourist@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := NewAuthService(repo, &config.AuthConfig{JWTSecret: "other-secret", TokenTTLDays: 7}, quietLogger())
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("密钥不匹配的Token应被拒绝")
	}
}
