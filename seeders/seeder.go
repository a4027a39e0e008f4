package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUsers создает администратора и базовый штат компании.
func SeedUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения пользователей...")

	if err := seedStaff(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения пользователей: %v", err)
	}
	log.Println("✅ Наполнение пользователей завершено!")
}

// SeedDemoData наполняет демонстрационные данные: контакты клиентов и процесс с мастер-классом.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демо-данных...")

	if err := seedClientContacts(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения контактов клиентов: %v", err)
	}
	if err := seedDemoProcess(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения демо-процесса: %v", err)
	}
	log.Println("✅ Наполнение демо-данных завершено!")
}
