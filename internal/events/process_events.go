package events

import (
	"workshop-system/internal/entities"
)

// ProcessAssignedEvent возникает при назначении инструктора на процесс.
type ProcessAssignedEvent struct {
	Process    entities.Process
	Instructor entities.User
	Actor      *entities.User
}

func (e ProcessAssignedEvent) Name() string {
	return "process.assigned"
}
