package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorInvalidCategory(t *testing.T) {
	err := fmt.Errorf("save metadata: %w", NewInvalidCategoryError("vermn", []string{"insects", "vermin"}))

	appErr := FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInvalidCategory.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	details, ok := appErr.Details.(InvalidValueError)
	require.True(t, ok)
	assert.Equal(t, "vermn", details.InvalidValue)
	assert.Equal(t, []string{"insects", "vermin"}, details.ValidValues)
}

func TestFromErrorInvalidState(t *testing.T) {
	appErr := FromError(NewInvalidStateError("done", []string{"new", "closed"}))
	assert.Equal(t, ErrInvalidState.Code, appErr.Code)
	assert.Contains(t, appErr.Message, `"done"`)
}

func TestFromErrorReferentialIntegrity(t *testing.T) {
	refErr := &ReferentialIntegrityError{
		Entity:     "option",
		Code:       "RatsMice",
		References: []Reference{{Kind: "issue_selection", Count: 2, IntakeIDs: []string{"a", "b"}}},
	}
	appErr := FromError(refErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, refErr, appErr.Details)
	assert.Equal(t, `cannot delete option "RatsMice": referenced by 2 issue_selection`, refErr.Error())
}

func TestFromErrorFallsBackToInternal(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Nil(t, FromError(nil))
}

func TestNewInvalidCategoryErrorCopiesValidSet(t *testing.T) {
	valid := []string{"vermin"}
	err := NewInvalidCategoryError("x", valid)
	valid[0] = "mutated"
	assert.Equal(t, []string{"vermin"}, err.ValidValues)
}
