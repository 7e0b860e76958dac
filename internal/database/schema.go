// internal/database/schema.go
//
// Idempotent schema bootstrap.
//
// Context
// -------
// The content store has two tables.  `collection.identifier` is globally
// unique; `content` is unique on (content_type, identifier) and indexed on
// content_type for pagination.  content_type is a weak reference to
// collection.identifier: there is no foreign key, and the repositories
// check existence themselves.
//
// Every statement is CREATE ... IF NOT EXISTS, so Migrate is safe to run
// on every boot when `database.auto_migrate` is on.
package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Statements is the ordered DDL applied by Migrate.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS collection (
		id          CHAR(26)     NOT NULL,
		name        VARCHAR(255) NOT NULL,
		identifier  VARCHAR(191) NOT NULL,
		created_by  VARCHAR(255) NOT NULL,
		updated_by  VARCHAR(255) NOT NULL,
		created_at  DATETIME(6)  NOT NULL,
		updated_at  DATETIME(6)  NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_collection_identifier (identifier)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS content (
		id            CHAR(26)     NOT NULL,
		name          VARCHAR(255) NOT NULL,
		identifier    VARCHAR(191) NOT NULL,
		content_type  VARCHAR(191) NOT NULL,
		fields        JSON         NOT NULL,
		created_by    VARCHAR(255) NOT NULL,
		updated_by    VARCHAR(255) NOT NULL,
		created_at    DATETIME(6)  NOT NULL,
		updated_at    DATETIME(6)  NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_content_type_identifier (content_type, identifier),
		KEY ix_content_type (content_type)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies Statements in order and stops at the first failure.
func Migrate(ctx context.Context, h Handle) error {
	for i, stmt := range Statements {
		if _, err := h.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	zap.S().Infow("schema ready", "statements", len(Statements))
	return nil
}
