package db

import (
	"log"

	"taskhub/internal/domain/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func Migration(dbDSN, migratePath string) error {
	if dbDSN == "" {
		log.Println("[ERROR] Не указана строка подключения к базе данных")
		return errors.ErrDatabaseConnection
	}
	if migratePath == "" {
		log.Println("[ERROR] Не указан путь к папке с миграциями")
		return errors.ErrConfigInvalidFormat
	}

	m, err := migrate.New("file://"+migratePath, dbDSN)
	if err != nil {
		log.Println("[ERROR] Не удалось инициализировать миграции:", err)
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Println("[ERROR] Не удалось применить миграции:", err)
		return err
	}
	return nil
}
