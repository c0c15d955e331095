package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const (
	ctxFirebaseUID = "firebase_uid"
	ctxEmail       = "email"
	ctxDisplayName = "display_name"
)

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info.
func FirebaseAuthMiddleware(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decodedToken, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		setUserContext(c, decodedToken)
		c.Next()
	}
}

// OptionalAuth verifies a Firebase ID token when one is presented but lets
// anonymous requests through untouched. Generation works signed out; the
// orchestrator skips quota, exclusion gathering and accounting for those
// requests.
func OptionalAuth(authClient *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if decodedToken, err := authClient.VerifyIDToken(c.Request.Context(), token); err == nil {
				setUserContext(c, decodedToken)
			}
		}
		c.Next()
	}
}

func setUserContext(c *gin.Context, token *auth.Token) {
	c.Set(ctxFirebaseUID, token.UID)

	if email, ok := token.Claims["email"].(string); ok {
		c.Set(ctxEmail, email)
	}
	if name, ok := token.Claims["name"].(string); ok {
		c.Set(ctxDisplayName, name)
	}

	// Store the full token for access to other claims if needed
	c.Set("firebase_token", token)
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
