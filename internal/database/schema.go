package database

import (
	"context"

	"github.com/surrealdb/surrealdb.go"
)

// schema holds the DDL applied by the init-db management command. SurrealDB
// is schemaless by default; the definitions below add the uniqueness and
// lookup indexes the stores rely on.
var schema = []string{
	"DEFINE TABLE IF NOT EXISTS user SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS user_username ON user FIELDS username UNIQUE",
	"DEFINE TABLE IF NOT EXISTS team SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS team_slug ON team FIELDS slug UNIQUE",
	"DEFINE TABLE IF NOT EXISTS project SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS project_slug ON project FIELDS slug UNIQUE",
	"DEFINE TABLE IF NOT EXISTS status SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS status_uuid ON status FIELDS uuid UNIQUE",
	"DEFINE INDEX IF NOT EXISTS status_created ON status FIELDS created",
	"DEFINE INDEX IF NOT EXISTS status_project ON status FIELDS projectSlug",
	"DEFINE INDEX IF NOT EXISTS status_user ON status FIELDS username",
}

// InitSchema applies the table and index definitions.
func InitSchema(ctx context.Context, db *surrealdb.DB) error {
	for _, stmt := range schema {
		if err := Execute(ctx, db, stmt, nil); err != nil {
			return err
		}
	}
	return nil
}
