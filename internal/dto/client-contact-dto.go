package dto

type CreateClientContactDTO struct {
	ClientName string  `json:"client_name" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Position   *string `json:"position,omitempty"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,e164_IL"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Notes      *string `json:"notes,omitempty"`
}

type UpdateClientContactDTO struct {
	ClientName *string `json:"client_name,omitempty" validate:"omitempty"`
	Name       *string `json:"name,omitempty"        validate:"omitempty"`
	Position   *string `json:"position,omitempty"`
	Phone      *string `json:"phone,omitempty"       validate:"omitempty,e164_IL"`
	Email      *string `json:"email,omitempty"       validate:"omitempty,email"`
	Notes      *string `json:"notes,omitempty"`
}
