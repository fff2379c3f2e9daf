package catalogcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abequinonez/udacity-item-catalog/models"
	"github.com/abequinonez/udacity-item-catalog/session"
	"github.com/abequinonez/udacity-item-catalog/store"
)

// NewItemForm renders the item creation form.
func NewItemForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := store.FromContext(c)
		categories, err := st.Categories()
		if err != nil {
			serverError(c, err)
			return
		}
		render(c, http.StatusOK, "new.html", gin.H{
			"Categories": categories,
		})
	}
}

// CreateItem persists a new item owned by the logged-in user, then
// redirects home.
func CreateItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := session.Current(c)
		st := store.FromContext(c)

		name := c.PostForm("name")
		if name == "" {
			session.Notify(c, "An item name is required.")
			c.Redirect(http.StatusFound, "/catalog/new")
			return
		}

		catID, err := strconv.Atoi(c.PostForm("cat_id"))
		if err != nil {
			session.Notify(c, "Please choose a category.")
			c.Redirect(http.StatusFound, "/catalog/new")
			return
		}
		if _, err := st.CategoryByID(uint(catID)); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				session.Notify(c, "Please choose a valid category.")
				c.Redirect(http.StatusFound, "/catalog/new")
				return
			}
			serverError(c, err)
			return
		}

		item := models.Item{
			Name:        name,
			Description: c.PostForm("description"),
			ImageURL:    c.PostForm("image_url"),
			CatID:       uint(catID),
			UserID:      identity.UserID,
		}
		if err := st.CreateItem(&item); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				session.Notify(c, "An item with that name already exists in this category.")
				c.Redirect(http.StatusFound, "/catalog/new")
				return
			}
			serverError(c, err)
			return
		}

		session.Notify(c, "Item successfully created!")
		c.Redirect(http.StatusFound, "/")
	}
}

// resolveOwned resolves the item from the path and enforces ownership.
// A non-owner is redirected to the item's page with a notice; no mutation
// is ever attempted on their behalf. ok reports whether the handler may
// proceed.
func resolveOwned(c *gin.Context) (models.Item, models.Category, bool) {
	st := store.FromContext(c)

	item, category, err := st.ResolveItem(c.Param("category"), c.Param("item"))
	if errors.Is(err, store.ErrNotFound) {
		notFound(c)
		return item, category, false
	}
	if err != nil {
		serverError(c, err)
		return item, category, false
	}

	identity, _ := session.Current(c)
	if item.UserID != identity.UserID {
		session.Notify(c, "Only the item's owner may make changes to it.")
		c.Redirect(http.StatusFound, itemPath(category, item))
		return item, category, false
	}
	return item, category, true
}

// EditItemForm renders the edit form for the item's owner.
func EditItemForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		if redirectLower(c) {
			return
		}
		item, category, ok := resolveOwned(c)
		if !ok {
			return
		}

		st := store.FromContext(c)
		categories, err := st.Categories()
		if err != nil {
			serverError(c, err)
			return
		}

		render(c, http.StatusOK, "edit.html", gin.H{
			"Categories": categories,
			"Category":   category,
			"Item":       item,
		})
	}
}

// UpdateItem applies only the submitted fields that differ from the stored
// values, then redirects to the item's canonical page. Resubmitting
// identical values writes nothing but still redirects successfully.
func UpdateItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		if redirectLower(c) {
			return
		}
		item, category, ok := resolveOwned(c)
		if !ok {
			return
		}
		st := store.FromContext(c)

		changed := false
		if v := c.PostForm("name"); v != "" && v != item.Name {
			item.Name = v
			changed = true
		}
		if v := c.PostForm("description"); v != "" && v != item.Description {
			item.Description = v
			changed = true
		}
		if v := c.PostForm("image_url"); v != "" && v != item.ImageURL {
			item.ImageURL = v
			changed = true
		}
		if v := c.PostForm("cat_id"); v != "" {
			catID, err := strconv.Atoi(v)
			if err == nil && uint(catID) != item.CatID {
				newCategory, err := st.CategoryByID(uint(catID))
				if err == nil {
					item.CatID = newCategory.ID
					category = newCategory
					changed = true
				}
			}
		}

		if changed {
			if err := st.UpdateItem(&item); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					session.Notify(c, "An item with that name already exists in this category.")
					// Back to the edit form at the item's current path.
					c.Redirect(http.StatusFound, c.Request.URL.EscapedPath())
					return
				}
				serverError(c, err)
				return
			}
			session.Notify(c, "Item successfully updated!")
		}

		c.Redirect(http.StatusFound, itemPath(category, item))
	}
}

// DeleteItemForm shows the delete confirmation view without mutating.
func DeleteItemForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		if redirectLower(c) {
			return
		}
		item, category, ok := resolveOwned(c)
		if !ok {
			return
		}
		render(c, http.StatusOK, "delete.html", gin.H{
			"Category": category,
			"Item":     item,
		})
	}
}

// DeleteItem removes the item after the explicit confirmation POST and
// redirects home.
func DeleteItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		if redirectLower(c) {
			return
		}
		item, _, ok := resolveOwned(c)
		if !ok {
			return
		}

		st := store.FromContext(c)
		if err := st.DeleteItem(&item); err != nil {
			serverError(c, err)
			return
		}

		session.Notify(c, "Item successfully deleted!")
		c.Redirect(http.StatusFound, "/")
	}
}
