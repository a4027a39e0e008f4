package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var clientContactsData = []struct {
	ClientName string
	Name       string
	Position   string
	Phone      string
	Email      string
}{
	{ClientName: "אינטל ישראל", Name: "רונית שמעוני", Position: "משאבי אנוש", Phone: "+972501234567", Email: "ronit@example.com"},
	{ClientName: "אינטל ישראל", Name: "דוד פרץ", Position: "רכש", Phone: "+972529876543", Email: "david@example.com"},
	{ClientName: "בנק הפועלים", Name: "ענת גולן", Position: "רווחה", Phone: "+972541112233", Email: "anat@example.com"},
}

func seedClientContacts(ctx context.Context, db *pgxpool.Pool) error {
	for _, c := range clientContactsData {
		var existingID uint64
		err := db.QueryRow(ctx,
			"SELECT id FROM client_contacts WHERE client_name = $1 AND name = $2",
			c.ClientName, c.Name).Scan(&existingID)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("проверка контакта %s: %w", c.Name, err)
		}

		_, err = db.Exec(ctx,
			"INSERT INTO client_contacts (client_name, name, position, phone, email) VALUES ($1, $2, $3, $4, $5)",
			c.ClientName, c.Name, c.Position, c.Phone, c.Email)
		if err != nil {
			return fmt.Errorf("создание контакта %s: %w", c.Name, err)
		}
		log.Printf("  - Создан контакт %s (%s)", c.Name, c.ClientName)
	}
	return nil
}

// seedDemoProcess создает один процесс с мастер-классом на следующую неделю,
// чтобы в свежей системе было что показать.
func seedDemoProcess(ctx context.Context, db *pgxpool.Pool) error {
	var existingID uint64
	err := db.QueryRow(ctx, "SELECT id FROM processes WHERE name = $1", "גיבוש צוות - אינטל ישראל").Scan(&existingID)
	if err == nil {
		log.Println("  - Демо-процесс уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("проверка демо-процесса: %w", err)
	}

	var instructorID *uint64
	var id uint64
	if err := db.QueryRow(ctx, "SELECT id FROM users WHERE role = 'instructor' ORDER BY id LIMIT 1").Scan(&id); err == nil {
		instructorID = &id
	}

	var processID uint64
	err = db.QueryRow(ctx,
		`INSERT INTO processes (name, type, status, client_name, instructor_id)
         VALUES ($1, 'workshop_series', 'active', $2, $3) RETURNING id`,
		"גיבוש צוות - אינטל ישראל", "אינטל ישראל", instructorID).Scan(&processID)
	if err != nil {
		return fmt.Errorf("создание демо-процесса: %w", err)
	}

	scheduledAt := time.Now().AddDate(0, 0, 7)
	_, err = db.Exec(ctx,
		`INSERT INTO workshops (process_id, instructor_id, title, status, scheduled_at, location, participants, client_name)
         VALUES ($1, $2, $3, 'planned', $4, $5, $6, $7)`,
		processID, instructorID, "סדנת גיבוש - יום ראשון", scheduledAt, "חיפה, קמפוס אינטל", 24, "אינטל ישראל")
	if err != nil {
		return fmt.Errorf("создание демо-мастер-класса: %w", err)
	}

	log.Println("  - Создан демо-процесс с мастер-классом.")
	return nil
}
