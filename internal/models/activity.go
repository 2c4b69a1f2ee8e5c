package models

import "time"

// ActivityType classifies an audit entry.
type ActivityType string

const (
	ActivityCreated         ActivityType = "created"
	ActivityStatusChanged   ActivityType = "statusChanged"
	ActivityAssigned        ActivityType = "assigned"
	ActivityNoteAdded       ActivityType = "noteAdded"
	ActivityNoteEdited      ActivityType = "noteEdited"
	ActivityDocGenerated    ActivityType = "docGenerated"
	ActivityPriorityChanged ActivityType = "priorityChanged"
	ActivityArchived        ActivityType = "archived"
	ActivityUnarchived      ActivityType = "unarchived"
)

var activityTypes = []ActivityType{
	ActivityCreated, ActivityStatusChanged, ActivityAssigned, ActivityNoteAdded, ActivityNoteEdited,
	ActivityDocGenerated, ActivityPriorityChanged, ActivityArchived, ActivityUnarchived,
}

// ActivityTypes returns every activity type as strings.
func ActivityTypes() []string {
	out := make([]string, len(activityTypes))
	for i, t := range activityTypes {
		out[i] = string(t)
	}
	return out
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	for _, known := range activityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Activity is an immutable audit record of one change on a case.
type Activity struct {
	ID           string       `db:"id" json:"id"`
	CaseID       string       `db:"case_id" json:"case_id"`
	ActivityType ActivityType `db:"activity_type" json:"activity_type"`
	Description  string       `db:"description" json:"description"`
	PerformedBy  string       `db:"performed_by" json:"performed_by"`
	PerformedAt  time.Time    `db:"performed_at" json:"performed_at"`
	OldValue     *string      `db:"old_value" json:"old_value,omitempty"`
	NewValue     *string      `db:"new_value" json:"new_value,omitempty"`
}

// ActivityFilter narrows activity retrieval. Empty fields match everything.
type ActivityFilter struct {
	CaseID string
	Types  []ActivityType
	// Since keeps entries performed at or after the instant.
	Since *time.Time
	// After resumes a feed strictly past the given entry.
	After *ActivityCursor
	Limit int
}

// ActivityCursor is the (performed_at, id) key of the last entry a reader saw.
type ActivityCursor struct {
	PerformedAt time.Time
	ID          string
}
