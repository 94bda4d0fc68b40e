package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/surrealdb/surrealdb.go"
)

// Connect opens the SurrealDB connection backing the standup stores and
// selects the namespace and database they query.
func Connect(ctx context.Context, url, ns, db, user, pass string) (*surrealdb.DB, error) {
	conn, err := surrealdb.FromEndpointURLString(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the standup database: %w", err)
	}

	if _, err = conn.SignIn(ctx, &surrealdb.Auth{Username: user, Password: pass}); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to the standup database: %w", err)
	}

	if err = conn.Use(ctx, ns, db); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to select namespace %q database %q: %w", ns, db, err)
	}

	slog.Info("Connected to the standup database", "ns", ns, "db", db)
	return conn, nil
}
