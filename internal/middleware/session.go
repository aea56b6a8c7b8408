package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"butce/internal/session"
)

// LoginPath is where requests without a session are sent.
const LoginPath = "/login"

// RequireSession redirects requests without a valid session to the login
// page and otherwise sets the user ID in the context.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessions.CurrentUserID(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
