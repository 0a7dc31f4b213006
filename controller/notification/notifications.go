package notification

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"focusboard/middleware"
	"focusboard/model"
	"focusboard/repository"
	"focusboard/services"
)

func NotificationController(router *gin.Engine, store repository.Store) {
	auth := middleware.AccessTokenMiddleware()

	router.GET("/api/notifications", auth, func(c *gin.Context) {
		getNotifications(c, store)
	})
}

// getNotifications recomputes due-date alerts from the owner's current
// task snapshot. Nothing is persisted; clients and periodic jobs poll
// this.
func getNotifications(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	tasks, err := store.TasksByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	items := services.BuildNotifications(tasks, time.Now())
	if items == nil {
		items = []model.Notification{}
	}
	c.JSON(http.StatusOK, items)
}
