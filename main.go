package main

import (
	"html/template"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/abequinonez/udacity-item-catalog/auth"
	"github.com/abequinonez/udacity-item-catalog/routes"
	"github.com/abequinonez/udacity-item-catalog/store"
)

func main() {
	log.Println("Starting catalog application...")

	// Load environment variables
	_ = godotenv.Load()

	st := initStore()

	// Gin setup
	r := gin.Default()

	// Cookie session: identity, state token, and one-shot notices
	r.Use(sessions.Sessions("catalog_session", cookie.NewStore([]byte(sessionSecret()))))

	r.SetFuncMap(template.FuncMap{
		// pathseg renders a name as a canonical lowercase URL segment.
		"pathseg": func(s string) string {
			return url.PathEscape(strings.ToLower(s))
		},
	})
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	// Provider credential files are read per request, not at startup
	google := auth.NewGoogle(envOr("GOOGLE_CLIENT_SECRETS", "client_secrets.json"))
	facebook := auth.NewFacebook(envOr("FB_CLIENT_SECRETS", "fb_client_secrets.json"))

	// Setup routes
	routes.SetupRoutes(r, st.DB(), google, facebook)

	// Start server
	port := envOr("PORT", "8080")
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initStore opens the sqlite catalog database and seeds it.
func initStore() *store.Store {
	st, err := store.Open(envOr("CATALOG_DB", "catalog.db"))
	if err != nil {
		log.Fatalf("Failed to open the catalog database: %v", err)
	}
	if err := st.SeedCategories(); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	if os.Getenv("SEED_SAMPLE_DATA") != "" {
		if err := st.SeedSampleData(); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}
	return st
}

func sessionSecret() string {
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		return secret
	}
	log.Println("SESSION_SECRET not set; using a development default")
	return "development-session-secret"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
