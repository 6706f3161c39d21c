package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// UserDTO represents an account in API responses; the password hash is never exposed
type UserDTO struct {
	ID         uint64     `json:"id"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	IsActive   bool       `json:"is_active"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Initials    string    `json:"initials"`
	Description string    `json:"description"`
	User        uint64    `json:"user"`
	ViewCount   uint64    `json:"view_count"`
	Deleted     bool      `json:"deleted"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Status      models.TaskStatus `json:"status"`
	Description string            `json:"description"`
	User        uint64            `json:"user"`
	Project     uint64            `json:"project"`
	ViewCount   uint64            `json:"view_count"`
	Deleted     bool              `json:"deleted"`
	Created     time.Time         `json:"created"`
	Modified    time.Time         `json:"modified"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		IsActive:   user.IsActive,
		LastLogin:  user.LastLogin,
		DateJoined: user.CreatedAt,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Initials:    project.Initials,
		Description: project.Description,
		User:        project.UserID,
		ViewCount:   project.ViewCount,
		Deleted:     project.Deleted,
		Created:     project.CreatedAt,
		Modified:    project.UpdatedAt,
	}
}

// ToProjectDTOs converts a slice of projects, never returning nil
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Code:        task.Code,
		Name:        task.Name,
		Status:      task.Status,
		Description: task.Description,
		User:        task.UserID,
		Project:     task.ProjectID,
		ViewCount:   task.ViewCount,
		Deleted:     task.Deleted,
		Created:     task.CreatedAt,
		Modified:    task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
