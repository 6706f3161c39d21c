package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the caller's projects, optionally searched with ?q=
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	projects, err := h.projectService.ListProjects(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, gin.H{"projects": dto.ToProjectDTOs(projects)})
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), services.CreateProjectInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusCreated, gin.H{"project": dto.ToProjectDTO(*project)})
}

// GetProject returns a project and its tasks; ?q= filters the tasks
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, _ := middleware.GetResourceID(c)

	detail, err := h.projectService.GetProject(c.Request.Context(), userID, projectID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, gin.H{
		"project": dto.ToProjectDTO(*detail.Project),
		"tasks":   dto.ToTaskDTOs(detail.Tasks),
	})
}

// UpdateProject updates a project (partial update)
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, _ := middleware.GetResourceID(c)

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), userID, projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, gin.H{"project": dto.ToProjectDTO(*project)})
}

// DeleteProject soft-deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, _ := middleware.GetResourceID(c)

	if err := h.projectService.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		respondServiceError(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, nil)
}
