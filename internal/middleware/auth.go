package middleware

import (
	"net/http"
	"strings"

	"finhealth/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// WorkspacesClaim lists the workspace ids a token may read
const WorkspacesClaim = "workspaces"

// RequireWorkspace validates the JWT and checks that the :workspaceId path parameter is
// listed in the token's workspaces claim. A token whose role equals adminRole may read
// any workspace.
func RequireWorkspace(secret []byte, adminRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			response.Abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		userRole, _ := claims["role"].(string)
		c.Set(ContextUserID, claims["sub"])
		c.Set(ContextUserRole, userRole)

		if adminRole != "" && userRole == adminRole {
			c.Next()
			return
		}

		workspaceID := strings.ToLower(strings.TrimSpace(c.Param("workspaceId")))
		for _, allowed := range workspaceClaim(claims) {
			if strings.ToLower(allowed) == workspaceID {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, "Access denied: workspace not granted")
	}
}

// bearerToken reads the access_token cookie, then the Authorization header.
// It aborts the request when neither carries a token.
func bearerToken(c *gin.Context) (string, bool) {
	if tokenString, err := c.Cookie("access_token"); err == nil && tokenString != "" {
		return tokenString, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Abort(c, http.StatusUnauthorized, "Authorization is missing")
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Abort(c, http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'")
		return "", false
	}
	return parts[1], true
}

// workspaceClaim accepts either a list of ids or a single id
func workspaceClaim(claims jwt.MapClaims) []string {
	switch v := claims[WorkspacesClaim].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
