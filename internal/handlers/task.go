package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the live tasks of ?project=, optionally searched with ?q=
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	projectID, err := strconv.ParseUint(c.Query("project"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID, projectID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// CreateTask creates a task in one of the caller's projects
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Project     uint64 `json:"project" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		OwnerID:     userID,
		ProjectID:   req.Project,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusCreated, gin.H{"task": dto.ToTaskDTO(*task)})
}

// GetTask returns a specific task by ID and counts the view
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, _ := middleware.GetResourceID(c)

	task, err := h.taskService.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask updates a task (partial update)
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, _ := middleware.GetResourceID(c)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, gin.H{"task": dto.ToTaskDTO(*task)})
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, _ := middleware.GetResourceID(c)

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, nil)
}
