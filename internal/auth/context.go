package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
	CtxDisplayName = "display_name"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// Empty for anonymous requests behind OptionalAuth.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserEmail extracts the authenticated user's email, if any.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

// UserDisplayName extracts the authenticated user's display name, if any.
func UserDisplayName(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxDisplayName))
}
