package entities

import (
	"time"
)

type MonthlyReport struct {
	ID             uint64    `json:"id"`
	InstructorID   uint64    `json:"instructor_id"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	WorkshopsCount int       `json:"workshops_count"`
	Approved       bool      `json:"approved"`
	ApprovedByID   *uint64   `json:"approved_by_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`

	// Связанные данные (не колонки в таблице)
	Instructor *User `json:"instructor,omitempty" db:"-"`
}

// WorkshopReportRow - строка сводного отчёта по мастер-классам
// (join workshops + users, фильтры месяц/год/инструктор).
type WorkshopReportRow struct {
	ID             uint64     `json:"id"`
	Title          string     `json:"title"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	Location       string     `json:"location"`
	Participants   int64      `json:"participants"`
	Status         string     `json:"status"`
	ClientName     string     `json:"client_name"`
	InstructorID   *uint64    `json:"instructor_id,omitempty"`
	InstructorName string     `json:"instructor_name"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ReportFilter - фильтры сводного отчёта.
type ReportFilter struct {
	Month        int
	Year         int
	InstructorID uint64
}
