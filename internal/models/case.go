package models

import "time"

// CaseStatus is the workflow state of a case.
type CaseStatus string

const (
	CaseStatusNew            CaseStatus = "new"
	CaseStatusInReview       CaseStatus = "in_review"
	CaseStatusDocsInProgress CaseStatus = "docs_in_progress"
	CaseStatusDocsGenerated  CaseStatus = "docs_generated"
	CaseStatusSentToClient   CaseStatus = "sent_to_client"
	CaseStatusFiled          CaseStatus = "filed"
	CaseStatusClosed         CaseStatus = "closed"
	CaseStatusOnHold         CaseStatus = "on_hold"
)

// caseStatuses lists every status; the first six are the typical forward order.
var caseStatuses = []CaseStatus{
	CaseStatusNew,
	CaseStatusInReview,
	CaseStatusDocsInProgress,
	CaseStatusDocsGenerated,
	CaseStatusSentToClient,
	CaseStatusFiled,
	CaseStatusClosed,
	CaseStatusOnHold,
}

// CaseStatuses returns the enumerated statuses as strings.
func CaseStatuses() []string {
	out := make([]string, len(caseStatuses))
	for i, s := range caseStatuses {
		out[i] = string(s)
	}
	return out
}

// Valid reports whether s is one of the enumerated statuses.
func (s CaseStatus) Valid() bool {
	for _, known := range caseStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Rank returns the position of s in the typical forward order, or -1 for
// closed, on_hold and unknown values.
func (s CaseStatus) Rank() int {
	for i, known := range caseStatuses[:6] {
		if s == known {
			return i
		}
	}
	return -1
}

// DocGenLoadTarget returns the status a case moves to when it is loaded into
// document generation. Only new cases advance; everything else stays put.
func DocGenLoadTarget(current CaseStatus) (CaseStatus, bool) {
	if current == CaseStatusNew {
		return CaseStatusInReview, true
	}
	return current, false
}

// Case is the dashboard entry wrapping one intake through its lifecycle.
type Case struct {
	ID                  string     `db:"id" json:"id"`
	IntakeID            string     `db:"intake_id" json:"intake_id"`
	ClientName          string     `db:"client_name" json:"client_name"`
	Status              CaseStatus `db:"status" json:"status"`
	StatusChangedAt     time.Time  `db:"status_changed_at" json:"status_changed_at"`
	StatusChangedBy     string     `db:"status_changed_by" json:"status_changed_by"`
	AssignedAttorneyRef *string    `db:"assigned_attorney_ref" json:"assigned_attorney_ref,omitempty"`
	AssignedAt          *time.Time `db:"assigned_at" json:"assigned_at,omitempty"`
	IsPriority          bool       `db:"is_priority" json:"is_priority"`
	IsArchived          bool       `db:"is_archived" json:"is_archived"`
	ArchivedAt          *time.Time `db:"archived_at" json:"archived_at,omitempty"`
	DocGenCount         int        `db:"doc_gen_count" json:"doc_gen_count"`
	LastDocGenAt        *time.Time `db:"last_doc_gen_at" json:"last_doc_gen_at,omitempty"`
	LastDocGenBy        *string    `db:"last_doc_gen_by" json:"last_doc_gen_by,omitempty"`
	DocGenLoadedAt      *time.Time `db:"docgen_loaded_at" json:"docgen_loaded_at,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// CaseFilter narrows the dashboard listing.
type CaseFilter struct {
	Status     CaseStatus
	AssignedTo string
	Priority   *bool
	Archived   *bool
	Page       int
	PageSize   int
}
