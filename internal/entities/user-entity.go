package entities

import (
	"workshop-system/pkg/constants"
	"workshop-system/pkg/types"
)

type User struct {
	ID           uint64             `json:"id"`
	Email        string             `json:"email"`
	Name         string             `json:"name"`
	Role         constants.UserRole `json:"role"`
	PasswordHash string             `json:"-"`

	types.BaseEntity // CreatedAt, UpdatedAt
}
