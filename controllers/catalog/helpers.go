package catalogcontroller

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abequinonez/udacity-item-catalog/models"
	"github.com/abequinonez/udacity-item-catalog/session"
)

// redirectLower canonicalizes path casing: a request whose path contains
// any uppercase letter is redirected to the all-lowercase URL. Returns
// true when a redirect was issued.
func redirectLower(c *gin.Context) bool {
	path := c.Request.URL.EscapedPath()
	lower := strings.ToLower(path)
	if path == lower {
		return false
	}
	c.Redirect(http.StatusFound, lower)
	return true
}

// itemPath is the canonical (lowercase) page URL for an item.
func itemPath(category models.Category, item models.Item) string {
	return "/catalog/" + url.PathEscape(strings.ToLower(category.Name)) +
		"/" + url.PathEscape(strings.ToLower(item.Name))
}

// render adds the pending notices and the logged-in identity to every
// page's data before handing off to the template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Notices"] = session.Notices(c)
	if identity, ok := session.Current(c); ok {
		data["User"] = identity
	}
	c.HTML(status, name, data)
}

func notFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", nil)
}

// serverError logs for operator visibility only; the user sees a bare 500.
func serverError(c *gin.Context, err error) {
	log.Printf("catalog: %v", err)
	c.AbortWithStatus(http.StatusInternalServerError)
}
