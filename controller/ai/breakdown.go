package ai

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"focusboard/dto"
	"focusboard/middleware"
	"focusboard/model"
	"focusboard/repository"
	"focusboard/services"
)

func AIController(router *gin.Engine, store repository.Store) {
	auth := middleware.AccessTokenMiddleware()

	router.POST("/api/ai/breakdown", auth, func(c *gin.Context) {
		breakdownTask(c, store)
	})
}

// breakdownTask asks the assistant collaborator for a step breakdown.
// The collaborator is best-effort: a degraded upstream yields the
// deterministic fallback, and storing the result onto a task never
// fails the request because the assistant did.
func breakdownTask(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	var req dto.BreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	probe := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.DueDate != "" {
		if parsed, err := time.Parse(time.RFC3339, req.DueDate); err == nil {
			probe.DueDate = &parsed
		}
	}
	meta := services.BreakdownTask(c.Request.Context(), nil, probe)

	if req.TaskID != "" {
		task, err := store.TaskByID(c.Request.Context(), req.TaskID)
		if err == nil && task.OwnerID == userID {
			// Stored verbatim; the content is the collaborator's to
			// get right.
			task.AIMeta = meta
			task.UpdatedAt = time.Now()
			_ = store.UpdateTask(c.Request.Context(), task)
		}
	}

	c.JSON(http.StatusOK, meta)
}
