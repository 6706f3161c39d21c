package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	logs     *observer.ObservedLogs
	projects *ProjectService
	tasks    *TaskService
	owner    *models.User
	stranger *models.User
	ctx      context.Context
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	core, logs := observer.New(zapcore.DebugLevel)
	suite.logs = logs
	log := zap.New(core)

	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	suite.projects = NewProjectService(projectRepo, taskRepo, log)
	suite.tasks = NewTaskService(taskRepo, projectRepo, log)

	suite.owner = createTestUser(suite.T(), suite.db, "owner")
	suite.stranger = createTestUser(suite.T(), suite.db, "stranger")
	suite.ctx = context.Background()
}

func (suite *ProjectServiceTestSuite) createProject(name, description string) *models.Project {
	project, err := suite.projects.CreateProject(suite.ctx, CreateProjectInput{
		OwnerID:     suite.owner.ID,
		Name:        name,
		Description: description,
	})
	suite.Require().NoError(err)
	return project
}

func (suite *ProjectServiceTestSuite) names(projects []models.Project) []string {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}

func (suite *ProjectServiceTestSuite) TestCreateProject() {
	project := suite.createProject("Website Redesign", "new look")

	suite.Equal("WR", project.Initials)
	suite.Equal(suite.owner.ID, project.UserID)
	suite.Zero(project.ViewCount)
	suite.False(project.Deleted)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_RequiresName() {
	_, err := suite.projects.CreateProject(suite.ctx, CreateProjectInput{OwnerID: suite.owner.ID, Name: "  "})
	suite.ErrorIs(err, ErrValidation)
}

func (suite *ProjectServiceTestSuite) TestGetProject_CountsViews() {
	project := suite.createProject("Alpha", "")

	var detail *ProjectDetail
	var err error
	for i := 0; i < 5; i++ {
		detail, err = suite.projects.GetProject(suite.ctx, suite.owner.ID, project.ID, "")
		suite.Require().NoError(err)
	}

	suite.Equal(uint64(5), detail.Project.ViewCount)
}

func (suite *ProjectServiceTestSuite) TestGetProject_IncludesLiveTasks() {
	project := suite.createProject("Alpha", "")
	for _, name := range []string{"design logo", "write copy", "ship"} {
		_, err := suite.tasks.CreateTask(suite.ctx, CreateTaskInput{OwnerID: suite.owner.ID, ProjectID: project.ID, Name: name})
		suite.Require().NoError(err)
	}
	gone, err := suite.tasks.CreateTask(suite.ctx, CreateTaskInput{OwnerID: suite.owner.ID, ProjectID: project.ID, Name: "logo draft"})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.tasks.DeleteTask(suite.ctx, suite.owner.ID, gone.ID))

	detail, err := suite.projects.GetProject(suite.ctx, suite.owner.ID, project.ID, "")
	suite.Require().NoError(err)
	suite.Len(detail.Tasks, 3)

	detail, err = suite.projects.GetProject(suite.ctx, suite.owner.ID, project.ID, "logo copy")
	suite.Require().NoError(err)
	suite.Len(detail.Tasks, 2)
}

func (suite *ProjectServiceTestSuite) TestGetProject_NotFound() {
	project := suite.createProject("Alpha", "")

	_, err := suite.projects.GetProject(suite.ctx, suite.stranger.ID, project.ID, "")
	suite.ErrorIs(err, ErrNotFound)

	_, err = suite.projects.GetProject(suite.ctx, suite.owner.ID, project.ID+100, "")
	suite.ErrorIs(err, ErrNotFound)

	suite.Require().NoError(suite.projects.DeleteProject(suite.ctx, suite.owner.ID, project.ID))
	_, err = suite.projects.GetProject(suite.ctx, suite.owner.ID, project.ID, "")
	suite.ErrorIs(err, ErrNotFound)

	var stored models.Project
	suite.Require().NoError(suite.db.First(&stored, project.ID).Error)
	suite.Zero(stored.ViewCount)
}

func (suite *ProjectServiceTestSuite) TestListProjects_Ordering() {
	a := suite.createProject("Alpha", "shared")
	b := suite.createProject("Beta", "shared")
	suite.createProject("Gamma", "shared")

	for i := 0; i < 2; i++ {
		_, err := suite.projects.GetProject(suite.ctx, suite.owner.ID, a.ID, "")
		suite.Require().NoError(err)
	}
	_, err := suite.projects.GetProject(suite.ctx, suite.owner.ID, b.ID, "")
	suite.Require().NoError(err)

	unfiltered, err := suite.projects.ListProjects(suite.ctx, suite.owner.ID, "")
	suite.Require().NoError(err)
	suite.Equal([]string{"Alpha", "Beta", "Gamma"}, suite.names(unfiltered))

	filtered, err := suite.projects.ListProjects(suite.ctx, suite.owner.ID, "shared")
	suite.Require().NoError(err)
	suite.Equal([]string{"Gamma", "Beta", "Alpha"}, suite.names(filtered))
}

func (suite *ProjectServiceTestSuite) TestListProjects_SearchRequiresEveryTerm() {
	suite.createProject("Alpha Beta", "")
	suite.createProject("Alpha", "has beta inside")
	suite.createProject("Alpha only", "")
	suite.createProject("Beta only", "")

	projects, err := suite.projects.ListProjects(suite.ctx, suite.owner.ID, "alpha BETA")
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"Alpha Beta", "Alpha"}, suite.names(projects))
}

func (suite *ProjectServiceTestSuite) TestListProjects_ExcludesDeletedAndForeign() {
	live := suite.createProject("Live", "")
	gone := suite.createProject("Gone", "")
	suite.Require().NoError(suite.projects.DeleteProject(suite.ctx, suite.owner.ID, gone.ID))

	_, err := suite.projects.CreateProject(suite.ctx, CreateProjectInput{OwnerID: suite.stranger.ID, Name: "Theirs"})
	suite.Require().NoError(err)

	projects, err := suite.projects.ListProjects(suite.ctx, suite.owner.ID, "")
	suite.Require().NoError(err)
	suite.Require().Len(projects, 1)
	suite.Equal(live.ID, projects[0].ID)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_KeepsInitials() {
	project := suite.createProject("Website Redesign", "old")

	updated, err := suite.projects.UpdateProject(suite.ctx, suite.owner.ID, project.ID, UpdateProjectInput{
		Name: strPtr("Mobile App"),
	})
	suite.Require().NoError(err)
	suite.Equal("Mobile App", updated.Name)
	suite.Equal("old", updated.Description)
	suite.Equal("WR", updated.Initials)

	_, err = suite.projects.UpdateProject(suite.ctx, suite.owner.ID, project.ID, UpdateProjectInput{Name: strPtr("")})
	suite.ErrorIs(err, ErrValidation)

	_, err = suite.projects.UpdateProject(suite.ctx, suite.stranger.ID, project.ID, UpdateProjectInput{Description: strPtr("x")})
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_ReachesSoftDeleted() {
	project := suite.createProject("Alpha", "")
	suite.Require().NoError(suite.projects.DeleteProject(suite.ctx, suite.owner.ID, project.ID))

	updated, err := suite.projects.UpdateProject(suite.ctx, suite.owner.ID, project.ID, UpdateProjectInput{
		Description: strPtr("edited after delete"),
	})
	suite.Require().NoError(err)
	suite.Equal("edited after delete", updated.Description)
	suite.True(updated.Deleted)
	suite.Equal(1, suite.logs.FilterMessage("soft-deleted project edited").Len())
}

func (suite *ProjectServiceTestSuite) TestDeleteProject_Idempotent() {
	project := suite.createProject("Alpha", "")

	suite.NoError(suite.projects.DeleteProject(suite.ctx, suite.owner.ID, project.ID))
	suite.NoError(suite.projects.DeleteProject(suite.ctx, suite.owner.ID, project.ID))

	suite.ErrorIs(suite.projects.DeleteProject(suite.ctx, suite.stranger.ID, project.ID), ErrNotFound)
	suite.ErrorIs(suite.projects.DeleteProject(suite.ctx, suite.owner.ID, project.ID+100), ErrNotFound)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
