package auth

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abequinonez/udacity-item-catalog/models"
	"github.com/abequinonez/udacity-item-catalog/session"
	"github.com/abequinonez/udacity-item-catalog/store"
)

// Connect handles a provider's login callback. One linear attempt: CSRF
// marker, state token, exchange, verify, profile, commit. Everything
// before the commit is read-only against the catalog store.
func Connect(provider Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A missing X-Requested-With marker signals a non-AJAX or forged
		// request.
		if c.GetHeader("X-Requested-With") == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Missing CSRF protection header."})
			return
		}

		state := session.State(c)
		if state == "" || c.Query("state") != state {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid state token."})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil || len(body) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization credential."})
			return
		}

		ctx := c.Request.Context()

		accessToken, err := provider.Exchange(ctx, string(body))
		if err != nil {
			log.Printf("auth: %s exchange failed: %v", provider.Name(), err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange the authorization credential."})
			return
		}

		subject, err := provider.Verify(ctx, accessToken)
		if err != nil {
			log.Printf("auth: %s verification failed: %v", provider.Name(), err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify the access token."})
			return
		}

		// A repeated login with the same provider account is a no-op.
		if current, ok := session.Current(c); ok && current.Provider == provider.Name() && current.Subject == subject {
			c.JSON(http.StatusOK, gin.H{"message": "You are already logged in."})
			return
		}

		profile, err := provider.FetchProfile(ctx, accessToken)
		if err != nil {
			log.Printf("auth: %s profile fetch failed: %v", provider.Name(), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch the user's profile."})
			return
		}

		// Commit point. Reuse the catalog user for this email or create
		// one on first login.
		st := store.FromContext(c)
		user, err := st.UserByEmail(profile.Email)
		if errors.Is(err, store.ErrNotFound) {
			user = models.User{Name: profile.Name, Email: profile.Email, Picture: profile.Picture}
			err = st.CreateUser(&user)
		}
		if err != nil {
			log.Printf("auth: user lookup failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up the user."})
			return
		}

		identity := session.Identity{
			UserID:   user.ID,
			Name:     profile.Name,
			Email:    profile.Email,
			Picture:  profile.Picture,
			Provider: provider.Name(),
			Subject:  subject,
		}
		if err := session.Login(c, identity); err != nil {
			log.Printf("auth: session save failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save the session."})
			return
		}

		session.Notify(c, "Welcome, "+profile.Name+"!")
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful.",
			"name":    profile.Name,
			"picture": profile.Picture,
		})
	}
}

// Logout clears the session unconditionally. Whether a login was present
// only changes the notice, never the outcome.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		wasLoggedIn, err := session.Clear(c)
		if err != nil {
			log.Printf("auth: session clear failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear the session."})
			return
		}

		message := "You were not logged in."
		if wasLoggedIn {
			message = "You have been logged out."
		}
		session.Notify(c, message)
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}
