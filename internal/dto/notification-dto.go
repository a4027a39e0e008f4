package dto

// UpdateNotificationPreferencesDTO - частичное обновление настроек
// уведомлений: не переданные поля не трогаем.
type UpdateNotificationPreferencesDTO struct {
	OnWorkshopCreated        *bool `json:"on_workshop_created,omitempty"`
	OnWorkshopUpdated        *bool `json:"on_workshop_updated,omitempty"`
	OnWorkshopCancelled      *bool `json:"on_workshop_cancelled,omitempty"`
	OnEquipmentStatusChanged *bool `json:"on_equipment_status_changed,omitempty"`
	OnEquipmentReady         *bool `json:"on_equipment_ready,omitempty"`
	OnMonthlyReportDue       *bool `json:"on_monthly_report_due,omitempty"`
	OnReportApproved         *bool `json:"on_report_approved,omitempty"`
	OnProcessAssigned        *bool `json:"on_process_assigned,omitempty"`
}
