package dto

import (
	"time"

	"workshop-system/internal/entities"
)

type CreateEquipmentDTO struct {
	WorkshopID uint64  `json:"workshop_id" validate:"required,gt=0"`
	Name       string  `json:"name" validate:"required"`
	AssignedTo *string `json:"assigned_to,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// UpdateEquipmentStatusDTO - прямая установка статуса (минуя таблицу переходов).
type UpdateEquipmentStatusDTO struct {
	Status string  `json:"status" validate:"required,equipment_status"`
	Notes  *string `json:"notes,omitempty"`
}

// AdvanceEquipmentStatusDTO - перевод в следующий статус по таблице переходов.
type AdvanceEquipmentStatusDTO struct {
	Notes *string `json:"notes,omitempty"`
}

type BatchUpdateStatusDTO struct {
	IDs    []uint64 `json:"ids" validate:"required,min=1,dive,gt=0"`
	Status string   `json:"status" validate:"required,equipment_status"`
}

// EquipmentListItemDTO - строка общего списка оборудования с данными
// мастер-класса из join-а.
type EquipmentListItemDTO struct {
	ID               uint64     `json:"id"`
	WorkshopID       uint64     `json:"workshop_id"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	AssignedTo       *string    `json:"assigned_to,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	CreatedAt        string     `json:"created_at"`
	UpdatedAt        string     `json:"updated_at"`
	WorkshopTitle    *string    `json:"workshop_title,omitempty"`
	WorkshopDate     *time.Time `json:"workshop_date,omitempty"`
	WorkshopLocation *string    `json:"workshop_location,omitempty"`
}

// BatchUpdateResultDTO - результат batch-обновления по одному id.
// Ошибка одного элемента не прерывает обработку остальных.
type BatchUpdateResultDTO struct {
	ID        uint64              `json:"id"`
	Equipment *entities.Equipment `json:"equipment,omitempty"`
	Error     string              `json:"error,omitempty"`
}
