package database

import (
	"fmt"
	"log"
	"time"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/studybuddy/internal/domain/entity"
)

// NewPostgresDB создает новое подключение к PostgreSQL
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настройка пула соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Максимальное число открытых соединений
	sqlDB.SetMaxOpenConns(25)

	// Максимальное число простаивающих соединений
	sqlDB.SetMaxIdleConns(10)

	// Максимальное время жизни соединения
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// MigrateDB приводит схему локального контрактного сервера к актуальным сущностям.
// Devserver — инструмент разработки, поэтому достаточно AutoMigrate без
// версионированных SQL-миграций.
func MigrateDB(db *gorm.DB) error {
	log.Println("Запуск применения миграций базы данных...")

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Book{},
		&entity.Question{},
		&entity.Buddy{},
	); err != nil {
		return fmt.Errorf("не удалось применить миграции: %w", err)
	}

	log.Println("Миграции успешно применены.")
	return nil
}
