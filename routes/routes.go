package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abequinonez/udacity-item-catalog/auth"
	apicontroller "github.com/abequinonez/udacity-item-catalog/controllers/api"
	catalogcontroller "github.com/abequinonez/udacity-item-catalog/controllers/catalog"
	"github.com/abequinonez/udacity-item-catalog/middleware"
)

// SetupRoutes is the single entry-point that wires up the page, auth, and
// API route groups. Every request runs inside its own store transaction.
func SetupRoutes(r *gin.Engine, db *gorm.DB, google, facebook auth.Provider) {
	r.Use(middleware.Transaction(db))

	// Public pages
	r.GET("/", catalogcontroller.Home())
	r.GET("/login", catalogcontroller.Login())
	r.GET("/catalog/:category", catalogcontroller.ShowCategory())
	r.GET("/catalog/:category/:item", catalogcontroller.ShowItem())

	// Login-required pages
	protected := r.Group("/")
	protected.Use(middleware.RequireLogin)
	{
		protected.GET("/catalog/new", catalogcontroller.NewItemForm())
		protected.POST("/catalog/new", catalogcontroller.CreateItem())
		protected.GET("/catalog/:category/:item/edit", catalogcontroller.EditItemForm())
		protected.POST("/catalog/:category/:item/edit", catalogcontroller.UpdateItem())
		protected.GET("/catalog/:category/:item/delete", catalogcontroller.DeleteItemForm())
		protected.POST("/catalog/:category/:item/delete", catalogcontroller.DeleteItem())
		protected.GET("/my-noodles", catalogcontroller.MyNoodles())
		protected.GET("/delete-account", catalogcontroller.DeleteAccount())
	}

	// OAuth bridge
	r.POST("/gconnect", auth.Connect(google))
	r.POST("/fbconnect", auth.Connect(facebook))
	r.POST("/logout", auth.Logout())

	// Read-only JSON API
	api := r.Group("/api")
	api.Use(cors.Default())
	{
		api.GET("/catalog", apicontroller.Catalog())
		api.GET("/catalog/:category", apicontroller.Category())
		api.GET("/catalog/:category/:item", apicontroller.Item())
	}
}
