package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/project-tracker-api/internal/config"
)

func TestDialector(t *testing.T) {
	d, err := Dialector(config.DBConfig{Driver: config.DriverMySQL, Host: "db", Port: "3306"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(config.DBConfig{Driver: config.DriverPostgres, Host: "db", Port: "5432"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	_, err = Dialector(config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := Open(SQLiteDialector(":memory:"), NewGormLogger(zap.NewNop(), logger.Silent))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	log := zap.NewNop()
	require.NoError(t, Migrate(db, log))
	require.NoError(t, Migrate(db, log))

	assert.True(t, db.Migrator().HasIndex("tasks", "idx_tasks_project_id_deleted"))
	assert.True(t, db.Migrator().HasIndex("tasks", "idx_tasks_project_seq"))
	assert.True(t, db.Migrator().HasTable("auth_tokens"))
}
