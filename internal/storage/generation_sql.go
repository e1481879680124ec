package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type GenerationSQLStorage struct {
	db *sql.DB
}

func (g *GenerationSQLStorage) Create(ctx context.Context, gen *Generation) error {
	query := `
	INSERT INTO generations (id, user_email, input_url, outputs, style, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	var email sql.NullString
	if gen.UserEmail != nil {
		email = sql.NullString{String: *gen.UserEmail, Valid: true}
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	_, err := g.db.ExecContext(ctxTimeout, query,
		gen.ID,
		email,
		gen.InputURL,
		gen.Outputs,
		gen.Style,
		gen.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to create generation: %w", err)
	}

	return nil
}

func (g *GenerationSQLStorage) GetByID(ctx context.Context, generationID string) (*Generation, error) {
	query := `
	SELECT id, user_email, input_url, outputs, style, created_at
	FROM generations
	WHERE id = ?
	`

	ctxTimeout, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var (
		gen       Generation
		email     sql.NullString
		createdAt string
	)
	err := g.db.QueryRowContext(ctxTimeout, query, generationID).Scan(
		&gen.ID,
		&email,
		&gen.InputURL,
		&gen.Outputs,
		&gen.Style,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenerationNotFound
		}
		return nil, fmt.Errorf("generation query failed: %w", err)
	}

	if email.Valid {
		gen.UserEmail = &email.String
	}

	gen.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q for generation %s: %w", createdAt, generationID, err)
	}

	return &gen, nil
}
