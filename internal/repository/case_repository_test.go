package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/internal/models"
)

var caseRowColumns = []string{
	"id", "intake_id", "client_name", "status", "status_changed_at", "status_changed_by",
	"assigned_attorney_ref", "assigned_at", "is_priority", "is_archived", "archived_at",
	"doc_gen_count", "last_doc_gen_at", "last_doc_gen_by", "docgen_loaded_at", "created_at", "updated_at",
}

func TestCaseRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCaseRepository(db)

	archived := false
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM case_dashboard cd WHERE 1=1 AND cd.status = $1 AND cd.is_archived = $2`)).
		WithArgs("in_review", false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $3 OFFSET $4`)).
		WithArgs("in_review", false, 20, 20).
		WillReturnRows(sqlmock.NewRows(caseRowColumns).
			AddRow("case-1", "intake-1", "Jane Doe", "in_review", now, "staff-1", nil, nil, false, false, nil, 0, nil, nil, nil, now, now))

	cases, total, err := repo.List(context.Background(), models.CaseFilter{
		Status:   models.CaseStatusInReview,
		Archived: &archived,
		Page:     2,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, cases, 1)
	assert.Equal(t, models.CaseStatusInReview, cases[0].Status)
	assert.Nil(t, cases[0].AssignedAttorneyRef)
}

func TestCaseRepositoryLockUsesForUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCaseRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE cd.id = $1 FOR UPDATE OF cd`)).
		WithArgs("case-1").
		WillReturnRows(sqlmock.NewRows(caseRowColumns).
			AddRow("case-1", "intake-1", "Jane Doe", "new", now, "staff-1", "atty-1", now, true, false, nil, 2, now, "staff-2", nil, now, now))

	c, err := repo.LockByID(context.Background(), "case-1")
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusNew, c.Status)
	require.NotNil(t, c.AssignedAttorneyRef)
	assert.Equal(t, "atty-1", *c.AssignedAttorneyRef)
	assert.Equal(t, 2, c.DocGenCount)
}

func TestCaseRepositoryUpdateStatusMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCaseRepository(db)

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE case_dashboard SET status = $1`)).
		WithArgs("closed", at, "staff-1", "case-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "case-404", models.CaseStatusClosed, "staff-1", at)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRowsAffected))
}

func TestCaseRepositoryRecordDocGeneration(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCaseRepository(db)

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`SET doc_gen_count = doc_gen_count + 1`)).
		WithArgs(at, "staff-1", "case-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RecordDocGeneration(context.Background(), "case-1", "staff-1", at))
}
