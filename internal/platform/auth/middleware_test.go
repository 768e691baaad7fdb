package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testKey = []byte("test-signing-key")

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(testKey)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newAuthContext(e *echo.Echo, token string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: []string{"nurse"},
	})

	c, _ := newAuthContext(e, token)
	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		if got := UserIDFromContext(c.Request().Context()); got != "user-1" {
			t.Errorf("expected user-1, got %q", got)
		}
		roles := RolesFromContext(c.Request().Context())
		if len(roles) != 1 || roles[0] != "nurse" {
			t.Errorf("unexpected roles: %v", roles)
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected next handler to run")
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	c, _ := newAuthContext(e, "")
	err := mw(func(c echo.Context) error { return nil })(c)
	if err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	e := echo.New()
	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	c, _ := newAuthContext(e, token)
	if err := mw(func(c echo.Context) error { return nil })(c); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	e := echo.New()
	mw := JWTMiddleware(JWTConfig{SigningKey: []byte("other-key")})
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	c, _ := newAuthContext(e, token)
	if err := mw(func(c echo.Context) error { return nil })(c); err == nil {
		t.Error("expected error for wrong signing key")
	}
}

func TestDevAuthMiddleware_GrantsAdmin(t *testing.T) {
	e := echo.New()
	c, _ := newAuthContext(e, "")
	handler := DevAuthMiddleware()(func(c echo.Context) error {
		roles := RolesFromContext(c.Request().Context())
		if len(roles) != 1 || roles[0] != "admin" {
			t.Errorf("expected admin role, got %v", roles)
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	c, _ := newAuthContext(e, "")
	inner := DevAuthMiddleware()(RequireRole("pharmacist")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	if err := inner(c); err != nil {
		t.Errorf("expected admin to pass pharmacist check: %v", err)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	e := echo.New()
	c, _ := newAuthContext(e, "")
	err := RequireRole("pharmacist")(func(c echo.Context) error { return nil })(c)
	if err == nil {
		t.Fatal("expected forbidden")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}
