package events

import (
	"time"

	"github.com/google/uuid"

	"workshop-system/internal/entities"
	"workshop-system/pkg/constants"
)

// EquipmentStatusChangedEvent возникает после записи события в журнал статусов.
// TxID присутствует у batch-обновлений и позволяет слушателю склеить
// несколько переходов в одно письмо.
type EquipmentStatusChangedEvent struct {
	Equipment  entities.Equipment
	Workshop   *entities.Workshop
	FromStatus constants.EquipmentStatus
	ToStatus   constants.EquipmentStatus
	Actor      *entities.User
	TxID       *uuid.UUID
	ChangedAt  time.Time
}

func (e EquipmentStatusChangedEvent) Name() string {
	return "equipment.status.changed"
}
