package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/model"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// DatabaseService owns the relational store. Postgres is used in
// production, sqlite for local development.
type DatabaseService struct {
	context.DefaultService
	db *gorm.DB

	driver string
	dsn    string
}

const DATABASE_SVC = "database_svc"

func (ds DatabaseService) Id() string {
	return DATABASE_SVC
}

func (ds DatabaseService) Db() *gorm.DB {
	return ds.db
}

func (ds *DatabaseService) Configure(ctx *context.Context) error {
	ds.driver = strings.ToLower(os.Getenv("DB_DRIVER"))
	if ds.driver == "" {
		ds.driver = DriverSqlite
		if os.Getenv("DATABASE_URL") != "" {
			ds.driver = DriverPostgres
		}
	}

	switch ds.driver {
	case DriverPostgres:
		ds.dsn = postgresDSN()
	case DriverSqlite:
		ds.dsn = sqlitePath()
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", ds.driver)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *DatabaseService) Start() (err error) {
	switch ds.driver {
	case DriverPostgres:
		ds.db, err = openPostgres(ds.dsn)
	default:
		ds.db, err = openSqlite(ds.dsn)
	}
	if err != nil {
		return err
	}

	if err = Migrate(ds.db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.WithField("driver", ds.driver).Info("Database connected and migrated successfully")
	return nil
}

func (ds *DatabaseService) Shutdown() {
	if ds.db == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
