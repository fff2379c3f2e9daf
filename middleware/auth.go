package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abequinonez/udacity-item-catalog/session"
)

// RequireLogin guards every mutating page. Unauthenticated requests are
// redirected to the login page with a notice before the handler runs.
func RequireLogin(c *gin.Context) {
	if _, ok := session.Current(c); !ok {
		session.Notify(c, "Please log in to continue.")
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}
