package task

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"focusboard/dto"
	"focusboard/middleware"
	"focusboard/model"
	"focusboard/repository"
)

func TaskController(router *gin.Engine, store repository.Store) {
	auth := middleware.AccessTokenMiddleware()

	router.GET("/api/tasks", auth, func(c *gin.Context) {
		listTasks(c, store)
	})
	router.POST("/api/tasks", auth, func(c *gin.Context) {
		createTask(c, store)
	})
	router.GET("/api/tasks/:id/dependencies", auth, func(c *gin.Context) {
		getTaskDependencies(c, store)
	})
	router.POST("/api/tasks/:id/attachments", auth, func(c *gin.Context) {
		addAttachment(c, store)
	})
	router.DELETE("/api/tasks/:id/attachments/:attachmentId", auth, func(c *gin.Context) {
		deleteAttachment(c, store)
	})
	router.GET("/api/tasks/:id", auth, func(c *gin.Context) {
		getTask(c, store)
	})
	router.PUT("/api/tasks/:id", auth, func(c *gin.Context) {
		updateTask(c, store)
	})
	router.DELETE("/api/tasks/:id", auth, func(c *gin.Context) {
		deleteTask(c, store)
	})
}

// ownedTask loads a task and enforces owner scoping: unknown id is
// 404, someone else's task is 401. Writes the error response itself
// and returns nil when the caller should stop.
func ownedTask(c *gin.Context, store repository.Store, id string) *model.Task {
	userID := c.MustGet("userId").(string)
	task, err := store.TaskByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil
	}
	if task.OwnerID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authorized"})
		return nil
	}
	return task
}

func listTasks(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	tasks, err := store.TasksByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func createTask(c *gin.Context, store repository.Store) {
	userID := c.MustGet("userId").(string)
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate format"})
			return
		}
		dueDate = &parsed
	}

	now := time.Now()
	newTask := model.Task{
		TaskID:        uuid.New().String(),
		OwnerID:       userID,
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        model.StatusTodo,
		Priority:      priority,
		DueDate:       dueDate,
		Tags:          req.Tags,
		Subtasks:      req.Subtasks,
		ParentTask:    req.ParentTask,
		Dependencies:  req.Dependencies,
		EstimatedTime: req.EstimatedTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.CreateTask(c.Request.Context(), &newTask); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	c.JSON(http.StatusCreated, &newTask)
}

func getTask(c *gin.Context, store repository.Store) {
	task := ownedTask(c, store, c.Param("id"))
	if task == nil {
		return
	}
	c.JSON(http.StatusOK, task)
}

func updateTask(c *gin.Context, store repository.Store) {
	task := ownedTask(c, store, c.Param("id"))
	if task == nil {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		// Any status may move directly to any other.
		if !model.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			parsed, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate format"})
				return
			}
			task.DueDate = &parsed
		}
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.Subtasks != nil {
		task.Subtasks = *req.Subtasks
	}
	if req.ParentTask != nil {
		task.ParentTask = *req.ParentTask
	}
	if req.Dependencies != nil {
		task.Dependencies = *req.Dependencies
	}
	if req.EstimatedTime != nil {
		task.EstimatedTime = *req.EstimatedTime
	}
	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	task.UpdatedAt = time.Now()

	if err := store.UpdateTask(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func deleteTask(c *gin.Context, store repository.Store) {
	task := ownedTask(c, store, c.Param("id"))
	if task == nil {
		return
	}

	if err := store.DeleteTask(c.Request.Context(), task.TaskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	// Dangling references are tolerated by every reader; the sweep is
	// opt-in.
	if c.Query("sweep") == "true" {
		if err := store.SweepTaskReferences(c.Request.Context(), task.OwnerID, task.TaskID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sweep references"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}

// getTaskDependencies resolves the task's dependency and parent
// references best-effort: ids that point at deleted or foreign tasks
// simply resolve to nothing.
func getTaskDependencies(c *gin.Context, store repository.Store) {
	task := ownedTask(c, store, c.Param("id"))
	if task == nil {
		return
	}
	ctx := c.Request.Context()

	dependencies := []*model.Task{}
	for _, depID := range task.Dependencies {
		dep, err := store.TaskByID(ctx, depID)
		if err != nil || dep.OwnerID != task.OwnerID {
			continue
		}
		dependencies = append(dependencies, dep)
	}

	var parent *model.Task
	if task.ParentTask != "" {
		if p, err := store.TaskByID(ctx, task.ParentTask); err == nil && p.OwnerID == task.OwnerID {
			parent = p
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"task":         task,
		"dependencies": dependencies,
		"parentTask":   parent,
	})
}

func addAttachment(c *gin.Context, store repository.Store) {
	task := ownedTask(c, store, c.Param("id"))
	if task == nil {
		return
	}

	var req dto.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	attachment := model.Attachment{
		ID:           uuid.New().String(),
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		URL:          req.URL,
		UploadedAt:   time.Now(),
	}
	task.Attachments = append(task.Attachments, attachment)
	task.UpdatedAt = time.Now()

	if err := store.UpdateTask(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add attachment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment added", "attachment": attachment})
}

func deleteAttachment(c *gin.Context, store repository.Store) {
	task := ownedTask(c, store, c.Param("id"))
	if task == nil {
		return
	}

	attachmentID := c.Param("attachmentId")
	kept := task.Attachments[:0]
	for _, a := range task.Attachments {
		if a.ID != attachmentID {
			kept = append(kept, a)
		}
	}
	task.Attachments = kept
	task.UpdatedAt = time.Now()

	if err := store.UpdateTask(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attachment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}
