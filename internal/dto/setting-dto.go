package dto

type UpdateSettingDTO struct {
	Value string `json:"value" validate:"required"`
}

// DashboardStatsDTO - агрегаты для главной страницы.
type DashboardStatsDTO struct {
	TotalProcesses    int            `json:"totalProcesses"`
	ActiveProcesses   int            `json:"activeProcesses"`
	TotalWorkshops    int            `json:"totalWorkshops"`
	TotalEquipment    int            `json:"totalEquipment"`
	EquipmentByStatus map[string]int `json:"equipmentByStatus"`
	TotalInstructors  int            `json:"totalInstructors"`
}
