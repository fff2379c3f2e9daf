package catalogcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abequinonez/udacity-item-catalog/session"
	"github.com/abequinonez/udacity-item-catalog/store"
)

// recentItemCount is the fixed size of the home page's latest-items list.
const recentItemCount = 8

// Home renders the most recent items across all categories.
func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := store.FromContext(c)

		categories, err := st.Categories()
		if err != nil {
			serverError(c, err)
			return
		}
		items, err := st.RecentItems(recentItemCount)
		if err != nil {
			serverError(c, err)
			return
		}

		render(c, http.StatusOK, "home.html", gin.H{
			"Categories": categories,
			"Items":      items,
		})
	}
}

// ShowCategory lists one category's items, newest first.
func ShowCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		if redirectLower(c) {
			return
		}
		st := store.FromContext(c)

		category, categories, err := st.ResolveCategory(c.Param("category"))
		if errors.Is(err, store.ErrNotFound) {
			notFound(c)
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}

		items, err := st.ItemsInCategory(category.ID)
		if err != nil {
			serverError(c, err)
			return
		}

		render(c, http.StatusOK, "category.html", gin.H{
			"Categories": categories,
			"Category":   category,
			"Items":      items,
		})
	}
}

// ShowItem renders an item's detail page with the full description.
func ShowItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		if redirectLower(c) {
			return
		}
		st := store.FromContext(c)

		item, category, err := st.ResolveItem(c.Param("category"), c.Param("item"))
		if errors.Is(err, store.ErrNotFound) {
			notFound(c)
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}

		render(c, http.StatusOK, "item.html", gin.H{
			"Category": category,
			"Item":     item,
		})
	}
}

// MyNoodles lists the items owned by the logged-in user.
func MyNoodles() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := session.Current(c)
		st := store.FromContext(c)

		items, err := st.ItemsByUser(identity.UserID)
		if err != nil {
			serverError(c, err)
			return
		}

		render(c, http.StatusOK, "my-noodles.html", gin.H{
			"Items": items,
		})
	}
}

// Login renders the login page with a fresh anti-forgery state token.
func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := strings.ReplaceAll(uuid.NewString(), "-", "")
		if err := session.SetState(c, state); err != nil {
			serverError(c, err)
			return
		}
		render(c, http.StatusOK, "login.html", gin.H{
			"State": state,
		})
	}
}

// DeleteAccount shows the account-deletion confirmation view. No deletion
// is wired up behind it.
func DeleteAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "delete-account.html", nil)
	}
}
