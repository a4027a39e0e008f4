// pkg/constants/constants.go
package constants

//============== РОЛИ ПОЛЬЗОВАТЕЛЕЙ ==============

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
	RoleOffice     UserRole = "office"
	RoleWarehouse  UserRole = "warehouse"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleOffice, RoleWarehouse:
		return true
	}
	return false
}

//============== ТИПЫ И СТАТУСЫ ПРОЦЕССОВ ==============

// Типы клиентских процессов (серия мастер-классов, курс, коучинг и т.д.).
const (
	ProcessTypeWorkshop     = "workshop"
	ProcessTypeCourse       = "course"
	ProcessTypeODT          = "odt"
	ProcessTypeCoaching     = "coaching"
	ProcessTypeConsulting   = "consulting"
	ProcessTypeFacilitation = "facilitation"
)

var ProcessTypes = []string{
	ProcessTypeWorkshop,
	ProcessTypeCourse,
	ProcessTypeODT,
	ProcessTypeCoaching,
	ProcessTypeConsulting,
	ProcessTypeFacilitation,
}

const (
	ProcessStatusActive    = "active"
	ProcessStatusCompleted = "completed"
	ProcessStatusCancelled = "cancelled"
	ProcessStatusOnHold    = "on_hold"
)

//============== СТАТУСЫ МАСТЕР-КЛАССОВ (WORKSHOP) ==============

const (
	WorkshopStatusPlanned   = "planned"
	WorkshopStatusConfirmed = "confirmed"
	WorkshopStatusCompleted = "completed"
	WorkshopStatusCancelled = "cancelled"
)

//============== КЛЮЧИ КЕША ==============

// Префиксы для ключей в Redis.
const (
	// Кеш агрегатов дашборда. Формат: dashboard:stats
	CacheKeyDashboardStats = "dashboard:stats"
)
