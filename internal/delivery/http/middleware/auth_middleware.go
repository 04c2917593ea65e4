package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token (HS256 with the shared secret, RS256 through JWKS),
// loads the user's role from the database and stores the resolved Principal on the context.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, users domain.UserRepository, resolver domain.PrincipalResolver) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (any, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if cfg.SupabaseJWTSecret == "" {
				return nil, errors.New("HS256 token received but SUPABASE_JWT_SECRET is not configured")
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		case *jwt.SigningMethodRSA:
			if jwksProvider == nil {
				return nil, errors.New("RS256 token received but no JWKS provider is configured")
			}
			return jwksProvider.KeyFunc(token)
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
	}

	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			if cookie, err := c.Cookie("auth_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
		if err != nil || !token.Valid {
			logger.FromContext(ctx).Warn("token validation failed", "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		// the role claim may be stale, the users table is authoritative
		user, err := users.GetByID(ctx, sub)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}
		role := user.Role
		if role == "" {
			role = domain.RoleCandidate
		}

		principal, err := resolver.Resolve(ctx, sub, role)
		if err != nil {
			logger.FromContext(ctx).Error("resolve principal", "user_id", sub, "error", err)
			response.Error(c, http.StatusInternalServerError, "Could not load account", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), string(role))
		c.Set(string(domain.KeyPrincipal), principal)
		c.Next()
	}
}

// RequireRole rejects principals whose role is not listed. Admins always pass.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
			c.Abort()
			return
		}
		if p.IsAdmin() {
			c.Next()
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
		c.Abort()
	}
}

// GetPrincipal returns the principal stored by AuthMiddleware
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
