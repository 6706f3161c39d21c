package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

// conflictingUserRepository fails the first inserts with a unique violation,
// as a concurrent signup claiming the same handle would.
type conflictingUserRepository struct {
	repository.UserRepository
	conflicts  int
	attempts   []string
	onConflict func()
}

func (r *conflictingUserRepository) Create(ctx context.Context, user *models.User) error {
	r.attempts = append(r.attempts, user.Username)
	if r.conflicts > 0 {
		r.conflicts--
		if r.onConflict != nil {
			r.onConflict()
		}
		return fmt.Errorf("%w: username taken", repository.ErrDuplicate)
	}
	return r.UserRepository.Create(ctx, user)
}

// conflictingTaskRepository fails the first sequenced inserts with a unique
// violation, as a concurrent creator taking the same ordinal would.
type conflictingTaskRepository struct {
	repository.TaskRepository
	conflicts int
	attempts  int
}

func (r *conflictingTaskRepository) CreateSequenced(ctx context.Context, task *models.Task) error {
	r.attempts++
	if r.conflicts > 0 {
		r.conflicts--
		return fmt.Errorf("%w: seq taken", repository.ErrDuplicate)
	}
	return r.TaskRepository.CreateSequenced(ctx, task)
}

func TestProvision_RetriesHandleConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := &conflictingUserRepository{UserRepository: repository.NewUserRepository(db), conflicts: 3}
	core, logs := observer.New(zapcore.WarnLevel)
	svc := newTestIdentityService(db, zap.New(core))
	svc.userRepo = repo

	user, err := svc.Provision(context.Background(), ProvisionInput{FullName: "John Doe", Email: "john@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "JohnDoe3", user.Username)
	assert.Equal(t, []string{"JohnDoe", "JohnDoe1", "JohnDoe2", "JohnDoe3"}, repo.attempts)
	assert.Equal(t, 3, logs.FilterMessage("handle claimed concurrently, retrying").Len())
}

func TestProvision_ConflictBound(t *testing.T) {
	tests := []struct {
		name      string
		conflicts int
		wantErr   error
		wantUser  string
	}{
		{"last allowed attempt succeeds", constants.MaxHandleConflicts - 1, nil, fmt.Sprintf("JohnDoe%d", constants.MaxHandleConflicts-1)},
		{"bound exceeded", constants.MaxHandleConflicts, ErrHandleExhausted, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			repo := &conflictingUserRepository{UserRepository: repository.NewUserRepository(db), conflicts: tt.conflicts}
			svc := newTestIdentityService(db, zap.NewNop())
			svc.userRepo = repo

			user, err := svc.Provision(context.Background(), ProvisionInput{FullName: "John Doe", Email: "john@example.com", Password: "pw"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, repo.attempts, constants.MaxHandleConflicts)

				var count int64
				require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
				assert.Zero(t, count)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user.Username)
		})
	}
}

func TestProvision_ConcurrentSameEmailIsDuplicateAccount(t *testing.T) {
	db := newTestDB(t)
	repo := &conflictingUserRepository{UserRepository: repository.NewUserRepository(db), conflicts: 1}
	repo.onConflict = func() {
		racer := &models.User{Username: "Racer", Email: "john@example.com", PasswordHash: "x", IsActive: true}
		require.NoError(t, db.Create(racer).Error)
	}
	svc := newTestIdentityService(db, zap.NewNop())
	svc.userRepo = repo

	_, err := svc.Provision(context.Background(), ProvisionInput{FullName: "John Doe", Email: "john@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateAccount)
	assert.Len(t, repo.attempts, 1)
}

func newConflictingTaskService(t *testing.T, conflicts int) (*TaskService, *conflictingTaskRepository, *models.Project, *observer.ObservedLogs) {
	t.Helper()
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")

	projectRepo := repository.NewProjectRepository(db)
	project := &models.Project{Name: "Website Redesign", Initials: "WR", UserID: owner.ID}
	require.NoError(t, projectRepo.Create(context.Background(), project))

	repo := &conflictingTaskRepository{TaskRepository: repository.NewTaskRepository(db), conflicts: conflicts}
	core, logs := observer.New(zapcore.WarnLevel)
	return NewTaskService(repo, projectRepo, zap.New(core)), repo, project, logs
}

func TestCreateTask_RetriesSequenceConflicts(t *testing.T) {
	svc, repo, project, logs := newConflictingTaskService(t, constants.MaxSequenceRetries)

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{OwnerID: project.UserID, ProjectID: project.ID, Name: "Design"})
	require.NoError(t, err)
	assert.Equal(t, "WR-1", task.Code)
	assert.Equal(t, constants.MaxSequenceRetries+1, repo.attempts)
	assert.Equal(t, constants.MaxSequenceRetries, logs.FilterMessage("sequence code taken, retrying").Len())
}

func TestCreateTask_SequenceRetriesAreBounded(t *testing.T) {
	svc, repo, project, _ := newConflictingTaskService(t, constants.MaxSequenceRetries+1)

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{OwnerID: project.UserID, ProjectID: project.ID, Name: "Design"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Nil(t, task)
	assert.Equal(t, constants.MaxSequenceRetries+1, repo.attempts)
}
