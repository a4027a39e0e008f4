// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"workshop-system/pkg/constants"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует все кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("e164_IL", isIsraeliPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("user_role", isKnownUserRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("equipment_status", isKnownEquipmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}

	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

// isIsraeliPhoneNumber: +972XXXXXXXXX либо локальный формат 0XXXXXXXXX.
func isIsraeliPhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^(\+972\d{8,9}|0\d{8,9})$`)
	return re.MatchString(fl.Field().String())
}

func isKnownUserRole(fl validator.FieldLevel) bool {
	return constants.UserRole(fl.Field().String()).IsValid()
}

func isKnownEquipmentStatus(fl validator.FieldLevel) bool {
	return constants.EquipmentStatus(fl.Field().String()).IsValid()
}
