package dto

type CreateMonthlyReportDTO struct {
	InstructorID   uint64 `json:"instructor_id" validate:"required,gt=0"`
	Month          int    `json:"month" validate:"required,gte=1,lte=12"`
	Year           int    `json:"year" validate:"required,gte=2000,lte=2100"`
	WorkshopsCount int    `json:"workshops_count" validate:"gte=0"`
}
