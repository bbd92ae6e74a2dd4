package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"

	"github.com/taskhive/backend/authz"
	"github.com/taskhive/backend/domain"
)

const testSecret = "middleware-test-secret"

type stubResolver struct {
	users map[string]*domain.User
}

func (s *stubResolver) ResolvePrincipal(ctx context.Context, userID string) (*domain.User, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type stubContexts struct{}

func (stubContexts) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

func signToken(t *testing.T, userID string, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func newAuth() func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	resolver := &stubResolver{users: map[string]*domain.User{
		"mgr-1": {ID: "mgr-1", Role: domain.RoleManager, IsActive: true},
		"off-1": {ID: "off-1", Role: domain.RoleDeveloper, IsActive: false},
	}}
	return Authenticate(testSecret, resolver, stubContexts{}, nil)
}

func run(mw func(fasthttp.RequestHandler) fasthttp.RequestHandler, token string) (*fasthttp.RequestCtx, bool) {
	ctx := &fasthttp.RequestCtx{}
	if token != "" {
		ctx.Request.Header.Set("Authorization", "Bearer "+token)
	}
	reached := false
	mw(func(ctx *fasthttp.RequestCtx) { reached = true })(ctx)
	return ctx, reached
}

func bodyMessage(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &payload); err != nil {
		t.Fatalf("decoding body %q: %v", ctx.Response.Body(), err)
	}
	return payload.Message
}

func TestAuthenticate(t *testing.T) {
	auth := newAuth()
	token := signToken(t, "mgr-1", jwt.SigningMethodHS256, []byte(testSecret))

	ctx, reached := run(auth, token)
	if !reached {
		t.Fatalf("valid token rejected: %d %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	p, ok := Principal(ctx)
	if !ok || p.ID != "mgr-1" || p.Role != domain.RoleManager {
		t.Fatalf("principal not stored: %+v", p)
	}
}

func TestAuthenticateNoToken(t *testing.T) {
	auth := newAuth()

	ctx, reached := run(auth, "")
	if reached {
		t.Fatal("request without a token passed")
	}
	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
	if msg := bodyMessage(t, ctx); msg != "No token" {
		t.Errorf("message = %q, want %q", msg, "No token")
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	auth := newAuth()

	cases := map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": signToken(t, "mgr-1", jwt.SigningMethodHS256, []byte("other")),
	}
	for name, token := range cases {
		ctx, reached := run(auth, token)
		if reached {
			t.Errorf("%s: request passed", name)
			continue
		}
		if ctx.Response.StatusCode() != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, ctx.Response.StatusCode())
		}
		if msg := bodyMessage(t, ctx); msg != "Invalid token" {
			t.Errorf("%s: message = %q, want %q", name, msg, "Invalid token")
		}
	}
}

func TestAuthenticateInactiveUser(t *testing.T) {
	auth := newAuth()
	token := signToken(t, "off-1", jwt.SigningMethodHS256, []byte(testSecret))

	ctx, reached := run(auth, token)
	if reached {
		t.Fatal("deactivated user passed with a still-valid token")
	}
	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
	if msg := bodyMessage(t, ctx); msg != "User inactive" {
		t.Errorf("message = %q, want %q", msg, "User inactive")
	}
}

func TestRequireAction(t *testing.T) {
	gate := RequireAction(authz.TaskCreate)

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue(principalKey, domain.Principal{ID: "mgr-1", Role: domain.RoleManager})
	reached := false
	gate(func(ctx *fasthttp.RequestCtx) { reached = true })(ctx)
	if !reached {
		t.Fatal("manager blocked from a manager action")
	}

	ctx = &fasthttp.RequestCtx{}
	ctx.SetUserValue(principalKey, domain.Principal{ID: "dev-1", Role: domain.RoleDeveloper})
	gate(func(ctx *fasthttp.RequestCtx) { t.Fatal("developer passed a manager gate") })(ctx)
	if ctx.Response.StatusCode() != http.StatusForbidden {
		t.Errorf("status = %d, want 403", ctx.Response.StatusCode())
	}
	if msg := bodyMessage(t, ctx); msg != "Forbidden" {
		t.Errorf("message = %q, want %q", msg, "Forbidden")
	}
}

func TestRequireActionNoPrincipal(t *testing.T) {
	gate := RequireAction(authz.TaskCreate)

	ctx := &fasthttp.RequestCtx{}
	gate(func(ctx *fasthttp.RequestCtx) { t.Fatal("unauthenticated request passed the gate") })(ctx)
	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", ctx.Response.StatusCode())
	}
}
