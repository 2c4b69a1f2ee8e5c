package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/internal/models"
)

func TestActivityRepositoryAppend(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	oldValue, newValue := "new", "in_review"
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO case_activities`)).
		WithArgs(sqlmock.AnyArg(), "case-1", "statusChanged", "Status changed", "staff-1", sqlmock.AnyArg(), "new", "in_review").
		WillReturnResult(sqlmock.NewResult(1, 1))

	activity := &models.Activity{
		CaseID:       "case-1",
		ActivityType: models.ActivityStatusChanged,
		Description:  "Status changed",
		PerformedBy:  "staff-1",
		OldValue:     &oldValue,
		NewValue:     &newValue,
	}
	require.NoError(t, repo.Append(context.Background(), activity))
	assert.NotEmpty(t, activity.ID)
}

func TestActivityRepositoryListByCaseAndType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`AND case_id = $1 AND activity_type = ANY($2)
ORDER BY performed_at ASC, id ASC`)).
		WithArgs("case-1", pq.StringArray{"noteAdded", "noteEdited"}).
		WillReturnRows(sqlmock.NewRows([]string{"id", "case_id", "activity_type", "description", "performed_by", "performed_at", "old_value", "new_value"}).
			AddRow("act-1", "case-1", "noteAdded", "Note added", "staff-1", now, nil, "note-1").
			AddRow("act-2", "case-1", "noteEdited", "Note edited", "staff-1", now.Add(time.Minute), nil, "note-1"))

	activities, err := repo.List(context.Background(), models.ActivityFilter{
		CaseID: "case-1",
		Types:  []models.ActivityType{models.ActivityNoteAdded, models.ActivityNoteEdited},
	})
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Nil(t, activities[0].OldValue)
	assert.Equal(t, "note-1", *activities[1].NewValue)
}

func TestActivityRepositoryListResumesAfterCursor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE 1=1 AND performed_at >= $1 AND (performed_at, id) > ($2, $3)
ORDER BY performed_at ASC, id ASC LIMIT $4`)).
		WithArgs(since, last, "act-7", 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "case_id", "activity_type", "description", "performed_by", "performed_at", "old_value", "new_value"}).
			AddRow("act-8", "case-4", "assigned", "Case assigned", "staff-2", last.Add(time.Minute), nil, "staff-2"))

	activities, err := repo.List(context.Background(), models.ActivityFilter{
		Since: &since,
		After: &models.ActivityCursor{PerformedAt: last, ID: "act-7"},
		Limit: 2,
	})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "act-8", activities[0].ID)
}
