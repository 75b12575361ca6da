package config

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"timetracker/models"
)

// InitDB opens the database named by DATABASE_URL and migrates the schema.
// sqlite:// URLs open a file database, everything else goes to postgres.
func InitDB(cfg *Config) *gorm.DB {
	db, err := OpenDB(cfg.DatabaseURL, cfg.SQLEcho)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	return db
}

func OpenDB(url string, echo bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if echo {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	if path, ok := sqlitePath(url); ok {
		db, err := gorm.Open(sqlite.Open(path), gormCfg)
		if err != nil {
			return nil, err
		}
		db.Exec("PRAGMA foreign_keys = ON")
		return db, nil
	}

	return gorm.Open(postgres.Open(url), gormCfg)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.PasswordResetToken{},
		&models.Invitation{},
		&models.Client{},
		&models.Project{},
		&models.Technology{},
		&models.ProjectTechnology{},
		&models.TimeEntry{},
		&models.TimeEntryTechnology{},
		&models.UserActivityLog{},
	)
}

func sqlitePath(url string) (string, bool) {
	for _, prefix := range []string{"sqlite:///", "sqlite://", "sqlite:"} {
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix), true
		}
	}
	return "", false
}
