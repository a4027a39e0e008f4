package events

import (
	"workshop-system/internal/entities"
)

// ReportApprovedEvent возникает при утверждении месячного отчёта офисом.
type ReportApprovedEvent struct {
	Report     entities.MonthlyReport
	Instructor entities.User
	Actor      *entities.User
}

func (e ReportApprovedEvent) Name() string {
	return "report.approved"
}
