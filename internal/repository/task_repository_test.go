package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

// TestReorder_SingleTransaction verifies that every order update runs
// inside one committed transaction.
func TestReorder_SingleTransaction(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	for i := 0; i < 3; i++ {
		mock.ExpectExec("UPDATE `tasks`").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	err := repo.Reorder([]uint64{7, 3, 9})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestReorder_RollsBackOnFailure verifies that a failed update rolls the
// whole transaction back, leaving no partial ordering behind.
func TestReorder_RollsBackOnFailure(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `tasks`").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := repo.Reorder([]uint64{7, 3})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestMaxOrderForOwner_NoTasks verifies the sentinel value for an owner
// with an empty list.
func TestMaxOrderForOwner_NoTasks(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(-1))

	max, err := repo.MaxOrderForOwner(42)

	require.NoError(t, err)
	assert.Equal(t, -1, max)
	assert.NoError(t, mock.ExpectationsWereMet())
}
