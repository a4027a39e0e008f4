package dto

type CreateUserDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,user_role"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserRoleDTO struct {
	Role string `json:"role" validate:"required,user_role"`
}

type ShortUserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
