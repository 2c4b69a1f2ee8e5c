package models

import "time"

// Note is a free-text case note. Deleting a note only flags it.
type Note struct {
	ID        string     `db:"id" json:"id"`
	CaseID    string     `db:"case_id" json:"case_id"`
	Content   string     `db:"content" json:"content"`
	IsPinned  bool       `db:"is_pinned" json:"is_pinned"`
	CreatedBy string     `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedBy *string    `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	IsDeleted bool       `db:"is_deleted" json:"is_deleted"`
	DeletedBy *string    `db:"deleted_by" json:"deleted_by,omitempty"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
