package dto

type CreateStudentInput struct {
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
	College   string `json:"college" validate:"required"`
	Program   string `json:"program" validate:"required"`
}

// UpdateStudentInput carries the edited form; nil fields were not touched.
type UpdateStudentInput struct {
	ID        int64
	FirstName *string
	LastName  *string
	College   *string
	Program   *string
}

// StudentPatch is the wire body of an update: only changed fields.
type StudentPatch struct {
	FirstName *string `json:"firstname,omitempty"`
	LastName  *string `json:"lastname,omitempty"`
	College   *string `json:"college,omitempty"`
	Program   *string `json:"program,omitempty"`
}

func (p StudentPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.College == nil && p.Program == nil
}
