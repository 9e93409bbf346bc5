package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"

	"github.com/Guyuepp/forum-comments/domain"
	mysqlRepo "github.com/Guyuepp/forum-comments/internal/repository/mysql"
)

var topicColumns = []string{"id", "user_id", "content", "views", "created_at", "updated_at"}

func TestTopicGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	rows := sqlmock.NewRows(topicColumns).AddRow(1, 3, "first topic", 12, now, now)
	mock.ExpectQuery("SELECT \\* FROM `topics` WHERE id = \\?").WillReturnRows(rows)

	repo := mysqlRepo.NewTopicRepository(db)
	topic, err := repo.GetByID(context.TODO(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), topic.ID)
	assert.Equal(t, int64(3), topic.UserID)
	assert.Equal(t, int64(12), topic.Views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `topics` WHERE id = \\?").WillReturnRows(sqlmock.NewRows(topicColumns))

	repo := mysqlRepo.NewTopicRepository(db)
	_, err := repo.GetByID(context.TODO(), 42)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicStore(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `topics`").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	repo := mysqlRepo.NewTopicRepository(db)
	topic := &domain.Topic{UserID: 1, Content: "hello"}
	err := repo.Store(context.TODO(), topic)

	require.NoError(t, err)
	assert.Equal(t, int64(9), topic.ID)
	assert.False(t, topic.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicTouch(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `topics` SET `updated_at`=GREATEST").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := mysqlRepo.NewTopicRepository(db)
	err := repo.Touch(context.TODO(), 1, time.Now())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicAddViewsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `topics` SET `views`=views \\+ \\?").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := mysqlRepo.NewTopicRepository(db)
	err := repo.AddViews(context.TODO(), 404, 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicFetchIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM `topics` WHERE id > \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4).AddRow(5))

	repo := mysqlRepo.NewTopicRepository(db)
	ids, err := repo.FetchIDs(context.TODO(), 3, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
