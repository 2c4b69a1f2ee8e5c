package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/legal-intake-api/internal/dto"
	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
)

type noteServiceMock struct {
	lastContent        string
	lastIncludeDeleted bool
	event              string
	err                error
}

func (m *noteServiceMock) note(id string) (*models.Note, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Note{ID: id, CaseID: "case-1", Content: m.lastContent}, nil
}

func (m *noteServiceMock) Create(ctx context.Context, caseID string, req dto.NoteRequest, actor *models.JWTClaims) (*models.Note, error) {
	m.event, m.lastContent = "create", req.Content
	return m.note("note-1")
}

func (m *noteServiceMock) Get(ctx context.Context, id string) (*models.Note, error) {
	m.event = "get"
	return m.note(id)
}

func (m *noteServiceMock) List(ctx context.Context, caseID string, includeDeleted bool) ([]models.Note, error) {
	m.event, m.lastIncludeDeleted = "list", includeDeleted
	return []models.Note{}, m.err
}

func (m *noteServiceMock) Edit(ctx context.Context, id string, req dto.NoteRequest, actor *models.JWTClaims) (*models.Note, error) {
	m.event, m.lastContent = "edit", req.Content
	return m.note(id)
}

func (m *noteServiceMock) Delete(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error) {
	m.event = "delete"
	return m.note(id)
}

func (m *noteServiceMock) Pin(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error) {
	m.event = "pin"
	return m.note(id)
}

func (m *noteServiceMock) Unpin(ctx context.Context, id string, actor *models.JWTClaims) (*models.Note, error) {
	m.event = "unpin"
	return m.note(id)
}

func TestNoteHandlerCreate(t *testing.T) {
	svc := &noteServiceMock{}
	handler := NewNoteHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/cases/case-1/notes", dto.NoteRequest{Content: "Called landlord"},
		gin.Param{Key: "id", Value: "case-1"})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Called landlord", svc.lastContent)
}

func TestNoteHandlerListIncludeDeleted(t *testing.T) {
	svc := &noteServiceMock{}
	handler := NewNoteHandler(svc)

	c, w := newTestContext(t, http.MethodGet, "/cases/case-1/notes?includeDeleted=true", nil, gin.Param{Key: "id", Value: "case-1"})
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.lastIncludeDeleted)

	c, w = newTestContext(t, http.MethodGet, "/cases/case-1/notes", nil, gin.Param{Key: "id", Value: "case-1"})
	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.lastIncludeDeleted)
}

func TestNoteHandlerEditDeletedNote(t *testing.T) {
	svc := &noteServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "note is deleted")}
	handler := NewNoteHandler(svc)

	c, w := newTestContext(t, http.MethodPatch, "/notes/note-1", dto.NoteRequest{Content: "again"}, gin.Param{Key: "id", Value: "note-1"})
	handler.Edit(c)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "edit", svc.event)
}

func TestNoteHandlerPinAndUnpin(t *testing.T) {
	svc := &noteServiceMock{}
	handler := NewNoteHandler(svc)

	c, w := newTestContext(t, http.MethodPost, "/notes/note-1/pin", nil, gin.Param{Key: "id", Value: "note-1"})
	handler.Pin(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pin", svc.event)

	c, w = newTestContext(t, http.MethodPost, "/notes/note-1/unpin", nil, gin.Param{Key: "id", Value: "note-1"})
	handler.Unpin(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unpin", svc.event)
}
