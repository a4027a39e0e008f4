package dto

import "time"

// SelectedExerciseDTO - выбор упражнения при бронировании: какие
// под-активности взяты и на сколько групп считать снаряжение.
type SelectedExerciseDTO struct {
	ExerciseID     uint64   `json:"exerciseId" validate:"required,gt=0"`
	SubActivityIDs []uint64 `json:"subActivityIds,omitempty"`
	NumGroups      int      `json:"numGroups"`
	Notes          string   `json:"notes,omitempty"`
}

type CreateWorkshopDTO struct {
	ProcessID    *uint64    `json:"process_id,omitempty"   validate:"omitempty,gt=0"`
	InstructorID *uint64    `json:"instructor_id,omitempty" validate:"omitempty,gt=0"`
	Title        string     `json:"title"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Participants *int64     `json:"participants,omitempty" validate:"omitempty,gt=0"`
	ClientName   *string    `json:"client_name,omitempty"`
	Notes        *string    `json:"notes,omitempty"`

	HRContactName           *string `json:"hr_contact_name,omitempty"`
	HRContactPhone          *string `json:"hr_contact_phone,omitempty"  validate:"omitempty,e164_IL"`
	HRContactEmail          *string `json:"hr_contact_email,omitempty"  validate:"omitempty,email"`
	ProcurementContactName  *string `json:"procurement_contact_name,omitempty"`
	ProcurementContactPhone *string `json:"procurement_contact_phone,omitempty" validate:"omitempty,e164_IL"`
	ProcurementContactEmail *string `json:"procurement_contact_email,omitempty" validate:"omitempty,email"`

	SelectedExercises []SelectedExerciseDTO `json:"selectedExercises,omitempty" validate:"omitempty,dive"`
	Checklist         map[string]string     `json:"checklist,omitempty"`
}

type UpdateWorkshopDTO struct {
	ProcessID    *uint64    `json:"process_id,omitempty"    validate:"omitempty,gt=0"`
	InstructorID *uint64    `json:"instructor_id,omitempty" validate:"omitempty,gt=0"`
	Title        *string    `json:"title,omitempty"         validate:"omitempty"`
	Status       *string    `json:"status,omitempty"        validate:"omitempty,oneof=planned confirmed completed cancelled"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Participants *int64     `json:"participants,omitempty"  validate:"omitempty,gt=0"`
	ClientName   *string    `json:"client_name,omitempty"`
	Notes        *string    `json:"notes,omitempty"`

	HRContactName           *string `json:"hr_contact_name,omitempty"`
	HRContactPhone          *string `json:"hr_contact_phone,omitempty"  validate:"omitempty,e164_IL"`
	HRContactEmail          *string `json:"hr_contact_email,omitempty"  validate:"omitempty,email"`
	ProcurementContactName  *string `json:"procurement_contact_name,omitempty"`
	ProcurementContactPhone *string `json:"procurement_contact_phone,omitempty" validate:"omitempty,e164_IL"`
	ProcurementContactEmail *string `json:"procurement_contact_email,omitempty" validate:"omitempty,email"`

	Checklist map[string]string `json:"checklist,omitempty"`
}

type CreateWorkshopSummaryDTO struct {
	ParticipantsCount int     `json:"participantsCount" validate:"required,gt=0"`
	SafetyIncident    bool    `json:"safetyIncident"`
	SafetyDetails     *string `json:"safetyDetails,omitempty"`
	Highlights        *string `json:"highlights,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}
