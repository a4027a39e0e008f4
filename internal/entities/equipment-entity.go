package entities

import (
	"github.com/aarondl/null/v8"

	"workshop-system/pkg/constants"
	"workshop-system/pkg/types"
)

// Equipment - единица снаряжения, заказанная под конкретный мастер-класс.
// Статус всегда одно из четырёх значений перечисления, NULL недопустим.
type Equipment struct {
	ID         uint64                    `json:"id"`
	WorkshopID uint64                    `json:"workshop_id"`
	Name       string                    `json:"name"`
	Status     constants.EquipmentStatus `json:"status"`
	AssignedTo null.String               `json:"assigned_to"`
	Notes      null.String               `json:"notes"`

	types.BaseEntity

	// Связанные данные (не колонки в таблице)
	Workshop *Workshop `json:"workshop,omitempty" db:"-"`
}
