package timelog

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"focusboard/dto"
	"focusboard/middleware"
	"focusboard/model"
	"focusboard/repository"
	"focusboard/services"
)

func TimeLogController(router *gin.Engine, store repository.Store) {
	auth := middleware.AccessTokenMiddleware()

	router.POST("/api/timelogs/start", auth, func(c *gin.Context) {
		startTimeLog(c, store)
	})
	router.POST("/api/timelogs/stop/:id", auth, func(c *gin.Context) {
		stopTimeLog(c, store)
	})
	router.GET("/api/timelogs/active", auth, func(c *gin.Context) {
		getActiveTimeLog(c, store)
	})
	router.GET("/api/timelogs/task/:taskId", auth, func(c *gin.Context) {
		getTaskTimeLogs(c, store)
	})
	router.GET("/api/timelogs", auth, func(c *gin.Context) {
		getTimeLogs(c, store)
	})
}

func startTimeLog(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	var req dto.StartTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	entry, err := services.StartTimer(c.Request.Context(), store, userID, req.TaskID, req.Type, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidLogType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time log type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start timer"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func stopTimeLog(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)

	entry, err := services.StopTimer(c.Request.Context(), store, userID, c.Param("id"), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		case errors.Is(err, repository.ErrAlreadyStopped):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Time log already stopped"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop timer"})
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

func getActiveTimeLog(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	entry, err := store.ActiveTimeLog(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entry == nil {
		// No active session; the client treats null as "idle".
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func getTaskTimeLogs(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	logs, err := store.TimeLogsByTask(c.Request.Context(), userID, c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []*model.TimeLog{}
	}
	c.JSON(http.StatusOK, logs)
}

func getTimeLogs(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	logs, err := store.TimeLogsByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []*model.TimeLog{}
	}
	c.JSON(http.StatusOK, logs)
}
