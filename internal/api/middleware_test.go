package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ContestSync/internal/config"
	"ContestSync/internal/model"
	"ContestSync/internal/repository"
	"ContestSync/internal/service"

	"github.com/gin-gonic/gin"
)

type fakeUserRepo struct {
	byID map[uint64]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[uint64]*model.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = uint64(len(f.byID) + 1)
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func newTestAuthService(userRepo repository.UserRepository) *service.AuthService {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTLDays: 7}
	return service.NewAuthService(userRepo, cfg, testLogger())
}

// tokenFor 走真实的注册→登录流程换取有效Token
func tokenFor(t *testing.T, svc *service.AuthService, email string) (string, *model.User) {
	t.Helper()
	ctx := context.Background()
	if err := svc.Register(ctx, "tester", email, "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, user, err := svc.Login(ctx, email, "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return token, user
}

func newProtectedRouter(svc *service.AuthService, userRepo repository.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/api", AuthRequired(svc, userRepo, testLogger()))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	authed.POST("/admin", AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthRequiredRejectsAnonymous(t *testing.T) {
	userRepo := newFakeUserRepo()
	r := newProtectedRouter(newTestAuthService(userRepo), userRepo)

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"not_bearer", "Basic abc"},
		{"garbage_token", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got=%d want=%d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo)
	token, _ := tokenFor(t, svc, "user@example.com")
	r := newProtectedRouter(svc, userRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", w.Code, w.Body.String())
	}
}

// Token有效但用户已注销→401
func TestAuthRequiredRejectsDeletedUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo)
	token, user := tokenFor(t, svc, "gone@example.com")
	delete(userRepo.byID, user.ID)
	r := newProtectedRouter(svc, userRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got=%d want=%d", w.Code, http.StatusUnauthorized)
	}
}

func TestAdminRequired(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestAuthService(userRepo)
	token, user := tokenFor(t, svc, "maybe-admin@example.com")
	r := newProtectedRouter(svc, userRepo)

	// 普通用户→403
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin status: got=%d want=%d", w.Code, http.StatusForbidden)
	}

	// 提权后放行
	user.IsAdmin = true
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin status: got=%d body=%s", w.Code, w.Body.String())
	}
}
