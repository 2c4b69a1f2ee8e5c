package dto

// NoteRequest carries note content for create and edit.
type NoteRequest struct {
	Content string `json:"content" validate:"required,max=20000"`
}
