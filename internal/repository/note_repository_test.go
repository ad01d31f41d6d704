package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecraft-app/timecraft-api/internal/models"
)

func TestNoteRepositoryListSubjects(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	rows := sqlmock.NewRows([]string{"subject"}).AddRow("CS101").AddRow("MATH201")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT subject FROM notes")).
		WillReturnRows(rows)

	subjects, err := repo.ListSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101", "MATH201"}, subjects)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (subject, title) DO UPDATE")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	note := &models.Note{Subject: "CS101", Title: "Lecture 1", Content: "pointers"}
	require.NoError(t, repo.Upsert(context.Background(), note))
	assert.NotEmpty(t, note.ID)
	assert.False(t, note.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepositoryFind(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	rows := sqlmock.NewRows([]string{"id", "subject", "title", "content", "created_at", "updated_at"}).
		AddRow("n1", "CS101", "Lecture 1", "pointers", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE subject = $1 AND title = $2")).
		WithArgs("CS101", "Lecture 1").
		WillReturnRows(rows)

	note, err := repo.Find(context.Background(), "CS101", "Lecture 1")
	require.NoError(t, err)
	assert.Equal(t, "pointers", note.Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewNoteRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes WHERE id = $1")).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "n1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
