package dto

// ChangeStatusRequest moves a case to another workflow status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignCaseRequest sets or clears the responsible attorney.
type AssignCaseRequest struct {
	AttorneyRef *string `json:"attorney_ref" validate:"omitempty,min=1,max=255"`
}

// SetPriorityRequest flags or unflags a case as priority.
type SetPriorityRequest struct {
	IsPriority *bool `json:"is_priority" validate:"required"`
}
