package entities

import (
	"github.com/aarondl/null/v8"

	"workshop-system/pkg/types"
)

// SelectedExercise - выбор упражнения при бронировании мастер-класса.
// Хранится в JSONB-колонке workshops.exercises.
type SelectedExercise struct {
	ExerciseID     uint64   `json:"exerciseId"`
	SubActivityIDs []uint64 `json:"subActivityIds,omitempty"`
	NumGroups      int      `json:"numGroups"`
	Notes          string   `json:"notes,omitempty"`
}

type Workshop struct {
	ID           uint64      `json:"id"`
	ProcessID    *uint64     `json:"process_id,omitempty"`
	InstructorID *uint64     `json:"instructor_id,omitempty"`
	Title        string      `json:"title"`
	Status       string      `json:"status"`
	ScheduledAt  null.Time   `json:"scheduled_at"`
	Location     null.String `json:"location"`
	Participants null.Int64  `json:"participants"`
	ClientName   null.String `json:"client_name"`
	Notes        null.String `json:"notes"`

	// Контакты на стороне клиента
	HRContactName           null.String `json:"hr_contact_name"`
	HRContactPhone          null.String `json:"hr_contact_phone"`
	HRContactEmail          null.String `json:"hr_contact_email"`
	ProcurementContactName  null.String `json:"procurement_contact_name"`
	ProcurementContactPhone null.String `json:"procurement_contact_phone"`
	ProcurementContactEmail null.String `json:"procurement_contact_email"`

	Exercises []SelectedExercise `json:"exercises"`
	Checklist map[string]string  `json:"checklist"`

	types.BaseEntity

	// Связанные данные (не колонки в таблице)
	Process    *Process `json:"process,omitempty" db:"-"`
	Instructor *User    `json:"instructor,omitempty" db:"-"`
}
