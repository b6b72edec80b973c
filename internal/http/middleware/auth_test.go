package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placenet/internal/common"
	"placenet/internal/domain/user"
	"placenet/internal/security"
)

func authFixture(t *testing.T) (*AuthMiddleware, *security.JWTProvider) {
	t.Helper()
	provider := security.NewJWTProvider("test-secret")
	return NewAuthMiddleware(provider), provider
}

func bearerRequest(t *testing.T, provider *security.JWTProvider, userID common.UUID, roles []string, activeRole string) *http.Request {
	t.Helper()
	token, _, err := provider.Generate(userID, roles, activeRole, time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/recruiter/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthenticatePopulatesContext(t *testing.T) {
	mw, provider := authFixture(t)
	userID := common.NewUUID()

	var gotID common.UUID
	var gotRole user.Role
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		gotRole, _ = ActiveRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, provider, userID, []string{"student", "recruiter"}, "recruiter"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != userID {
		t.Fatalf("expected user id %s, got %s", userID, gotID)
	}
	if gotRole != user.RoleRecruiter {
		t.Fatalf("expected active role recruiter, got %s", gotRole)
	}
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	mw, _ := authFixture(t)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	mw, _ := authFixture(t)
	other := security.NewJWTProvider("another-secret")
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, other, common.NewUUID(), []string{"student"}, "student"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	mw, provider := authFixture(t)
	handler := mw.Authenticate(RequireRole(user.RoleRecruiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, provider, common.NewUUID(), []string{"student"}, "student"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, provider, common.NewUUID(), []string{"recruiter"}, "recruiter"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticateIgnoresUnheldActiveRole(t *testing.T) {
	mw, provider := authFixture(t)
	handler := mw.Authenticate(RequireRole(user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	// The token claims an active role its role set does not contain.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(t, provider, common.NewUUID(), []string{"student"}, "admin"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an unheld active role, got %d", rec.Code)
	}
}
