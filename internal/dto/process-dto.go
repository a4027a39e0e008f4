package dto

type CreateProcessDTO struct {
	Name         string  `json:"name" validate:"required"`
	Type         string  `json:"type" validate:"required,oneof=workshop course odt coaching consulting facilitation"`
	ClientName   string  `json:"client_name" validate:"required"`
	InstructorID *uint64 `json:"instructor_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateProcessDTO struct {
	Name         *string `json:"name,omitempty"          validate:"omitempty"`
	Type         *string `json:"type,omitempty"          validate:"omitempty,oneof=workshop course odt coaching consulting facilitation"`
	Status       *string `json:"status,omitempty"        validate:"omitempty,oneof=active completed cancelled on_hold"`
	ClientName   *string `json:"client_name,omitempty"   validate:"omitempty"`
	InstructorID *uint64 `json:"instructor_id,omitempty" validate:"omitempty,gt=0"`
}
