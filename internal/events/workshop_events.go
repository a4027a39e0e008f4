package events

import (
	"workshop-system/internal/entities"
)

// WorkshopCreatedEvent возникает после бронирования мастер-класса
// (вместе со снаряжением, заказанным под него).
type WorkshopCreatedEvent struct {
	Workshop       entities.Workshop
	EquipmentCount int
	Actor          *entities.User
}

func (e WorkshopCreatedEvent) Name() string {
	return "workshop.created"
}

type WorkshopUpdatedEvent struct {
	Workshop entities.Workshop
	Actor    *entities.User
}

func (e WorkshopUpdatedEvent) Name() string {
	return "workshop.updated"
}

type WorkshopCancelledEvent struct {
	Workshop entities.Workshop
	Actor    *entities.User
}

func (e WorkshopCancelledEvent) Name() string {
	return "workshop.cancelled"
}

// WorkshopDeletedEvent возникает после каскадного удаления мастер-класса.
type WorkshopDeletedEvent struct {
	WorkshopID uint64
}

func (e WorkshopDeletedEvent) Name() string {
	return "workshop.deleted"
}
