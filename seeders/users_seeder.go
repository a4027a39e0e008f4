package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"workshop-system/pkg/constants"
)

var staffData = []struct {
	Email    string
	Name     string
	Role     constants.UserRole
	Password string
}{
	{Email: "admin@evenderech.co.il", Name: "מנהל מערכת", Role: constants.RoleAdmin, Password: "admin12345"},
	{Email: "office@evenderech.co.il", Name: "רכזת משרד", Role: constants.RoleOffice, Password: "office12345"},
	{Email: "warehouse@evenderech.co.il", Name: "אחראי מחסן", Role: constants.RoleWarehouse, Password: "warehouse12345"},
	{Email: "yossi@evenderech.co.il", Name: "יוסי לוי", Role: constants.RoleInstructor, Password: "yossi12345"},
	{Email: "michal@evenderech.co.il", Name: "מיכל כהן", Role: constants.RoleInstructor, Password: "michal12345"},
}

func seedStaff(ctx context.Context, db *pgxpool.Pool) error {
	for _, s := range staffData {
		var existingID uint64
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", s.Email).Scan(&existingID)
		if err == nil {
			log.Printf("  - Пользователь %s уже существует. Пропускаем.", s.Email)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("проверка существования пользователя %s: %w", s.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("хеширование пароля для %s: %w", s.Email, err)
		}

		_, err = db.Exec(ctx,
			"INSERT INTO users (email, name, role, password_hash) VALUES ($1, $2, $3, $4)",
			s.Email, s.Name, s.Role.String(), string(hash))
		if err != nil {
			return fmt.Errorf("создание пользователя %s: %w", s.Email, err)
		}
		log.Printf("  - Создан пользователь %s (%s)", s.Email, s.Role)
	}
	return nil
}
