// Package apicontroller serves the read-only JSON mirror of the catalog.
package apicontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abequinonez/udacity-item-catalog/models"
	"github.com/abequinonez/udacity-item-catalog/store"
)

// Catalog returns every category with its nested items. Items are
// partitioned by filtering the full item set per category; no item can
// appear under more than one category.
func Catalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := store.FromContext(c)

		categories, err := st.Categories()
		if err != nil {
			serverError(c, err)
			return
		}
		items, err := st.AllItems()
		if err != nil {
			serverError(c, err)
			return
		}

		views := make([]models.CategoryView, 0, len(categories))
		for _, category := range categories {
			views = append(views, category.Serialize(items))
		}
		c.JSON(http.StatusOK, gin.H{"categories": views})
	}
}

// Category returns one category with its nested items, resolved ignoring
// case, or 404.
func Category() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := store.FromContext(c)

		category, _, err := st.ResolveCategory(c.Param("category"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found."})
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
		c.JSON(http.StatusOK, gin.H{"category": category.Serialize(items)})
	}
}

// Item returns one item with its full, untruncated description, or 404.
func Item() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := store.FromContext(c)

		item, _, err := st.ResolveItem(c.Param("category"), c.Param("item"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found."})
			return
		}
		if err != nil {
			serverError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item.Serialize()})
	}
}

func serverError(c *gin.Context, err error) {
	log.Printf("api: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error."})
}
