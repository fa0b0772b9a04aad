package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ganeshdatta23/skillstacker/internal/models"
)

// OpenPostgres abre la conexión relacional y migra el esquema sakila
// que usamos (customer, film, actor, category, rental, payment).
func OpenPostgres(dsn string, debug bool) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	if !debug {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	gdb, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Film{},
		&models.Actor{},
		&models.Category{},
		&models.Order{},
		&models.Payment{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %v", err)
	}

	log.Println("[postgres] conectado y esquema migrado")
	return gdb, nil
}

// ClosePostgres cierra el pool subyacente.
func ClosePostgres(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %v", err)
	}
	return sqlDB.Close()
}
