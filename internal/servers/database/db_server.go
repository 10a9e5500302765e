package database

import (
	"fmt"
	"log/slog"
	"nodeBoard/configs"
	"nodeBoard/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type psql struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSL      string
	Timezone string
}

func Connect(config *configs.Config) (*gorm.DB, error) {
	p := getPSQL(config)
	dsn := fmt.Sprintf(
		"host=%v user=%v password=%v dbname=%v port=%v sslmode=%v TimeZone=%v",
		p.Host, p.User, p.Password, p.Name, p.Port, p.SSL, p.Timezone,
	)
	logLevel := logger.Warn
	if config.IsDevelopment() {
		logLevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database: connecting to %s:%d: %w", p.Host, p.Port, err)
	}
	return db, nil
}

func getPSQL(config *configs.Config) *psql {
	return &psql{
		Host:     config.Viper.GetString("database.host"),
		Port:     config.Viper.GetInt("database.port"),
		User:     config.Viper.GetString("database.user"),
		Password: config.Viper.GetString("database.password"),
		Name:     config.Viper.GetString("database.name"),
		SSL:      config.Viper.GetString("database.ssl"),
		Timezone: config.Viper.GetString("database.timezone"),
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Whiteboard{},
		&models.CreditTransaction{},
		&models.Subscription{},
		&models.Image{},
		&models.Speech{},
		&models.Website{},
	)
	if err != nil {
		return fmt.Errorf("database: migrating: %w", err)
	}
	slog.Debug("Database migrated successfully")
	return nil
}
