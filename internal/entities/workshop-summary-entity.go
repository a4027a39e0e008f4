package entities

import (
	"github.com/aarondl/null/v8"

	"workshop-system/pkg/types"
)

// WorkshopSummary - итоговый отчёт инструктора после проведения мастер-класса.
type WorkshopSummary struct {
	ID                uint64      `json:"id"`
	WorkshopID        uint64      `json:"workshop_id"`
	ParticipantsCount int         `json:"participants_count"`
	SafetyIncident    bool        `json:"safety_incident"`
	SafetyDetails     null.String `json:"safety_details"`
	Highlights        null.String `json:"highlights"`
	Notes             null.String `json:"notes"`

	types.BaseEntity
}
