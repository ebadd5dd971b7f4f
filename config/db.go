package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSN builds the MySQL DSN from MYSQL_DSN or the individual MYSQL_* vars.
func MySQLDSN() string {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		user := os.Getenv("MYSQL_USER")
		pass := os.Getenv("MYSQL_PASS")
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		db := os.Getenv("MYSQL_DB")
		if port == "" {
			port = "3306"
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
	}
	return dsn
}

// NewDB opens the catalog database. CATALOG_DB_DRIVER selects "mysql" (default)
// or "sqlite" (SQLITE_PATH, default storefront.db).
func NewDB() (*gorm.DB, error) {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use log.Logger for Printf support
		logger.Config{
			SlowThreshold: time.Second, // Slow SQL threshold
			LogLevel:      logMode,     // Log level
			Colorful:      true,        // Enable color
		},
	)

	var dialector gorm.Dialector
	switch driver := GetEnv("CATALOG_DB_DRIVER", "mysql"); driver {
	case "mysql":
		dialector = mysql.Open(MySQLDSN())
	case "sqlite":
		dialector = sqlite.Open(GetEnv("SQLITE_PATH", "storefront.db"))
	default:
		return nil, fmt.Errorf("unsupported CATALOG_DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
