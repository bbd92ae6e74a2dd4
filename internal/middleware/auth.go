// Package middleware carries the request-level authentication and the coarse
// role gate. Fine-grained ownership checks live in the authz engine and run
// inside the use cases, after the record is loaded.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/authz"
	"github.com/taskhive/backend/domain"
)

const principalKey = "auth_principal"

// PrincipalResolver turns a token subject into the current user record.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (*domain.User, error)
}

// ContextFactory builds a std context for the user lookup performed during
// authentication.
type ContextFactory interface {
	Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc)
}

// Principal returns the authenticated identity stored by Authenticate.
func Principal(ctx *fasthttp.RequestCtx) (domain.Principal, bool) {
	p, ok := ctx.UserValue(principalKey).(domain.Principal)
	return p, ok
}

// Authenticate validates the bearer token and resolves it to an active user.
// The lookup happens on every request, so deactivation takes effect
// immediately even for tokens that have not expired.
func Authenticate(secret string, resolver PrincipalResolver, contexts ContextFactory, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(secret)

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				respondMessage(ctx, http.StatusUnauthorized, domain.ErrNoToken.Message)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				respondMessage(ctx, http.StatusUnauthorized, domain.ErrInvalidToken.Message)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				respondMessage(ctx, http.StatusUnauthorized, domain.ErrInvalidToken.Message)
				return
			}
			userID, _ := claims["id"].(string)
			if userID == "" {
				respondMessage(ctx, http.StatusUnauthorized, domain.ErrInvalidToken.Message)
				return
			}

			stdCtx, cancel := contexts.Attach(ctx)
			user, err := resolver.ResolvePrincipal(stdCtx, userID)
			cancel()
			if err != nil || !user.IsActive {
				respondMessage(ctx, http.StatusUnauthorized, domain.ErrUserInactive.Message)
				return
			}

			ctx.SetUserValue(principalKey, domain.Principal{ID: user.ID, Role: user.Role})
			next(ctx)
		}
	}
}

// RequireAction is the role gate: a declarative allow-list check ahead of any
// handler logic. Violations get a generic forbidden reply.
func RequireAction(action authz.Action) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			p, ok := Principal(ctx)
			if !ok {
				respondMessage(ctx, http.StatusUnauthorized, domain.ErrNoToken.Message)
				return
			}
			if !authz.Can(p.Role, action) {
				respondMessage(ctx, http.StatusForbidden, domain.ErrForbidden.Message)
				return
			}
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func respondMessage(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.Message{Message: message})
	ctx.SetBody(body)
}
