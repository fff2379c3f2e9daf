package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/abequinonez/udacity-item-catalog/store"
)

// Transaction gives each request its own store transaction: begin at
// entry, commit on a clean exit, roll back when the chain aborted, a
// handler answered with a server error, or a panic escaped. Handlers
// reach the transaction through store.FromContext.
func Transaction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.Begin()
		if tx.Error != nil {
			log.Printf("middleware: failed to begin transaction: %v", tx.Error)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		store.ToContext(c, store.New(tx))

		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()

		c.Next()

		if c.IsAborted() || c.Writer.Status() >= http.StatusInternalServerError {
			tx.Rollback()
			return
		}
		if err := tx.Commit().Error; err != nil {
			log.Printf("middleware: failed to commit transaction: %v", err)
		}
	}
}
