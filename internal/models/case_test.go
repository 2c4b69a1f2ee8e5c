package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseStatusValid(t *testing.T) {
	for _, s := range CaseStatuses() {
		assert.True(t, CaseStatus(s).Valid(), s)
	}
	assert.False(t, CaseStatus("done").Valid())
	assert.False(t, CaseStatus("").Valid())
	assert.Len(t, CaseStatuses(), 8)
}

func TestCaseStatusRank(t *testing.T) {
	assert.Equal(t, 0, CaseStatusNew.Rank())
	assert.Equal(t, 5, CaseStatusFiled.Rank())
	assert.Equal(t, -1, CaseStatusClosed.Rank())
	assert.Equal(t, -1, CaseStatusOnHold.Rank())
	assert.Greater(t, CaseStatusDocsGenerated.Rank(), CaseStatusInReview.Rank())
}

func TestDocGenLoadTargetNeverMovesBackwards(t *testing.T) {
	next, changed := DocGenLoadTarget(CaseStatusNew)
	assert.True(t, changed)
	assert.Equal(t, CaseStatusInReview, next)

	for _, s := range CaseStatuses()[1:] {
		next, changed := DocGenLoadTarget(CaseStatus(s))
		assert.False(t, changed, s)
		assert.Equal(t, CaseStatus(s), next)
	}
}

func TestActivityTypes(t *testing.T) {
	assert.Len(t, ActivityTypes(), 9)
	assert.True(t, ActivityType("noteEdited").Valid())
	assert.False(t, ActivityType("deleted").Valid())
}
