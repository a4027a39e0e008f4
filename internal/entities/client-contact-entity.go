package entities

import (
	"github.com/aarondl/null/v8"

	"workshop-system/pkg/types"
)

type ClientContact struct {
	ID         uint64      `json:"id"`
	ClientName string      `json:"client_name"`
	Name       string      `json:"name"`
	Position   null.String `json:"position"`
	Phone      null.String `json:"phone"`
	Email      null.String `json:"email"`
	Notes      null.String `json:"notes"`

	types.BaseEntity
}
