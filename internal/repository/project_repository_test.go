package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockRepo(t *testing.T) (ProjectRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewProjectRepository(gdb), mock
}

// The cascade must run as one transaction: tasks first, then the project,
// with nothing committed if either step fails.
func TestProjectRepository_Delete_SingleTransaction(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET `deleted_at`").
		WithArgs(sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE `projects` SET `deleted_at`").
		WithArgs(sqlmock.AnyArg(), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Delete_RollsBackOnTaskFailure(t *testing.T) {
	repo, mock := setupMockRepo(t)

	taskErr := errors.New("task delete failed")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET `deleted_at`").
		WillReturnError(taskErr)
	mock.ExpectRollback()

	require.ErrorIs(t, repo.Delete(42), taskErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
