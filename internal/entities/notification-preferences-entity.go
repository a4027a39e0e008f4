package entities

import (
	"time"
)

// NotificationPreferences - per-user настройки email-уведомлений.
// По умолчанию все темы включены.
type NotificationPreferences struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`

	// Мастер-классы
	OnWorkshopCreated   bool `json:"on_workshop_created"`
	OnWorkshopUpdated   bool `json:"on_workshop_updated"`
	OnWorkshopCancelled bool `json:"on_workshop_cancelled"`

	// Оборудование
	OnEquipmentStatusChanged bool `json:"on_equipment_status_changed"`
	OnEquipmentReady         bool `json:"on_equipment_ready"`

	// Отчёты
	OnMonthlyReportDue bool `json:"on_monthly_report_due"`
	OnReportApproved   bool `json:"on_report_approved"`

	// Процессы
	OnProcessAssigned bool `json:"on_process_assigned"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultNotificationPreferences - настройки нового пользователя.
func DefaultNotificationPreferences(userID uint64) NotificationPreferences {
	return NotificationPreferences{
		UserID:                   userID,
		OnWorkshopCreated:        true,
		OnWorkshopUpdated:        true,
		OnWorkshopCancelled:      true,
		OnEquipmentStatusChanged: true,
		OnEquipmentReady:         true,
		OnMonthlyReportDue:       true,
		OnReportApproved:         true,
		OnProcessAssigned:        true,
	}
}
