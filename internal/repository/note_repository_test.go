package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noteRowColumns = []string{"id", "case_id", "content", "is_pinned", "created_by", "created_at", "updated_by", "updated_at", "is_deleted", "deleted_by", "deleted_at"}

func TestNoteRepositoryListExcludesDeletedByDefault(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE case_id = $1 AND is_deleted = FALSE ORDER BY is_pinned DESC, created_at DESC`)).
		WithArgs("case-1").
		WillReturnRows(sqlmock.NewRows(noteRowColumns).
			AddRow("note-2", "case-1", "pinned", true, "staff-1", now.Add(-time.Hour), nil, nil, false, nil, nil).
			AddRow("note-1", "case-1", "recent", false, "staff-1", now, nil, nil, false, nil, nil))

	notes, err := repo.List(context.Background(), "case-1", false)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.True(t, notes[0].IsPinned)
}

func TestNoteRepositoryListIncludingDeleted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM case_notes WHERE case_id = $1 ORDER BY`)).
		WithArgs("case-1").
		WillReturnRows(sqlmock.NewRows(noteRowColumns).
			AddRow("note-1", "case-1", "gone", false, "staff-1", now, nil, nil, true, "staff-2", now))

	notes, err := repo.List(context.Background(), "case-1", true)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.True(t, notes[0].IsDeleted)
	assert.Equal(t, "staff-2", *notes[0].DeletedBy)
}

func TestNoteRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE case_notes SET is_deleted = TRUE`)).
		WithArgs("staff-2", at, "note-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "note-1", "staff-2", at))
}
