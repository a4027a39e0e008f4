package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"workshop-system/pkg/constants"
)

// StatusEvent - запись журнала смены статуса оборудования. Журнал только
// дописывается: записи не редактируются и не удаляются, кроме каскадного
// удаления вместе с мастер-классом.
type StatusEvent struct {
	ID          uint64                    `json:"id"`
	EquipmentID uint64                    `json:"equipment_id"`
	FromStatus  constants.EquipmentStatus `json:"from_status"`
	ToStatus    constants.EquipmentStatus `json:"to_status"`
	ChangedBy   uint64                    `json:"changed_by"`
	Notes       null.String               `json:"notes"`
	// TxID группирует события одного batch-обновления для склейки уведомлений.
	TxID      *uuid.UUID `json:"tx_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// Связанные данные (не колонки в таблице)
	ChangedByUser *User `json:"changed_by_user,omitempty" db:"-"`
}
