package server

import (
	"errors"
	"strings"

	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/authctx"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	"github.com/gin-gonic/gin"
)

const (
	ctxKeyScope = "access_scope"
	ctxKeyRole  = "auth_role"
)

// AuthRequired validates the bearer token, loads the account and resolves
// the caller's app scope before the handler runs.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, _, err := s.issuer.Verify(raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.authSvc.Me(c.Request.Context(), userID)
		if err != nil {
			// A token naming a deleted account is indistinguishable from a
			// forged one.
			if errors.Is(err, userdomain.ErrNotFound) {
				err = ErrUnauthorized
			}
			AbortWithError(c, err)
			return
		}

		scope, err := s.accessResolver.Resolve(c.Request.Context(), user.ID, user.Role)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := authctx.WithIdentity(c.Request.Context(), authctx.Identity{
			UserID: user.ID,
			Role:   user.Role,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxKeyScope, scope)
		c.Set(ctxKeyRole, user.Role)
		c.Next()
	}
}

// AdminRequired rejects child_admin callers. Must run after AuthRequired.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxKeyRole) != userdomain.RoleAdmin {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" {
		if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(raw)
		}
	}
	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

func scopeFromContext(c *gin.Context) access.Scope {
	value, ok := c.Get(ctxKeyScope)
	if !ok {
		return access.RestrictedTo(nil)
	}
	scope, ok := value.(access.Scope)
	if !ok {
		return access.RestrictedTo(nil)
	}
	return scope
}
