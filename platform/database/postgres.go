package database

import (
	"context"

	"github.com/DedS3t/flarepoly-backend/app/models"
	"github.com/DedS3t/flarepoly-backend/platform/config"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

func PostgreSQLConnection(c *config.Config) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     c.DBUser,
		Addr:     c.DBAddr,
		Password: c.DBPassword,
		Database: c.DBName,
	})
}

// CreateSchema creates the games table when it is missing.
func CreateSchema(ctx context.Context, db *pg.DB) error {
	if err := db.Ping(ctx); err != nil {
		return err
	}
	return db.ModelContext(ctx, (*models.Game)(nil)).CreateTable(&orm.CreateTableOptions{
		IfNotExists: true,
	})
}
