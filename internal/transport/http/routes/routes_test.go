package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gutscas/santo-dashboard/internal/infra/config"
	"github.com/gutscas/santo-dashboard/internal/infra/security"
	"github.com/gutscas/santo-dashboard/internal/usecase"
)

const (
	testSigningSecret = "routes-test-secret"
	testTokenIssuer   = "accounts-test"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		App: config.AppSettings{Env: "test", AllowedOrigins: []string{"*"}},
		JWT: config.JWTSettings{
			Secret:          testSigningSecret,
			Issuer:          testTokenIssuer,
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}

	jwtManager, err := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	// Repositories are nil; only paths that fail before touching storage
	// are exercised here.
	return Register(Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
		Services: ServiceSet{
			Auth:          usecase.NewAuthService(cfg, nil, nil, jwtManager, nil),
			Registration:  usecase.NewRegistrationService(nil, nil, nil),
			Profiles:      usecase.NewProfileService(nil, nil, nil),
			PasswordReset: usecase.NewPasswordResetService(nil, nil, nil, nil, nil),
			Posts:         usecase.NewPostService(nil),
		},
	})
}

func TestRoutes_Health(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz returned %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz returned %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics returned %d", rec.Code)
	}
}

func TestRoutes_ProtectedEndpointsRequireBearer(t *testing.T) {
	engine := newTestEngine(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/profile/me/"},
		{http.MethodPost, "/profiles/"},
		{http.MethodGet, "/profiles/all/"},
		{http.MethodGet, "/profiles/some-id/"},
	}

	for _, p := range paths {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token returned %d, want 401", p.method, p.path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile/me/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage bearer token returned %d, want 401", rec.Code)
	}
}

func TestRoutes_MalformedPayloadsRejected(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(`{"email":"not-json`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed login returned %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/posts/", strings.NewReader(`{"content":"no title"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("post without title returned %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/token/refresh/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh without token returned %d, want 401", rec.Code)
	}
}

func mintBearer(t *testing.T, accountID string) string {
	t.Helper()

	jwtManager, err := security.NewJWTManager(testSigningSecret, testTokenIssuer)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	token, err := jwtManager.Sign(accountID, time.Now().UTC(), 15*time.Minute)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	return "Bearer " + token
}

func TestRoutes_BareProfilesPathRequiresIdentifier(t *testing.T) {
	engine := newTestEngine(t)
	bearer := mintBearer(t, "acc-1")

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/profiles/", nil)
		req.Header.Set("Authorization", bearer)
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s /profiles/ returned %d, want 400", method, rec.Code)
		}
	}
}

func TestRoutes_UnknownPostRejectedBeforeStorage(t *testing.T) {
	engine := newTestEngine(t)

	// Title over 100 characters is rejected by validation, before any
	// repository call happens.
	long := strings.Repeat("x", 101)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/", strings.NewReader(`{"title":"`+long+`"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized title returned %d, want 400", rec.Code)
	}
}