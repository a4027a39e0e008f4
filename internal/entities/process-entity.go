package entities

import (
	"workshop-system/pkg/types"
)

// Process - клиентский процесс (серия мастер-классов, курс, коучинг).
type Process struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	ClientName   string  `json:"client_name"`
	InstructorID *uint64 `json:"instructor_id,omitempty"`

	types.BaseEntity

	// Связанные данные (не колонки в таблице)
	Instructor *User `json:"instructor,omitempty" db:"-"`
}
