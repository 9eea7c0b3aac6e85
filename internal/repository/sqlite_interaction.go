package repository

import (
	"context"
	"fmt"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// SQLiteInteractionRepo stores the AI and search history.
type SQLiteInteractionRepo struct {
	db db.DBTX
}

func NewSQLiteInteractionRepo(conn db.DBTX) *SQLiteInteractionRepo {
	return &SQLiteInteractionRepo{db: conn}
}

func (r *SQLiteInteractionRepo) Create(ctx context.Context, i *domain.Interaction) error {
	query := `INSERT INTO interactions (id, user_id, kind, prompt, response, provider, model,
		latency_ms, input_tokens, output_tokens, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.UserID,
		string(i.Kind),
		i.Prompt,
		i.Response,
		i.Provider,
		i.Model,
		i.LatencyMs,
		i.InputTokens,
		i.OutputTokens,
		boolToInt(i.Success),
		i.ErrorMessage,
		formatTime(i.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// List returns the newest interactions first.
func (r *SQLiteInteractionRepo) List(ctx context.Context, userID string, filter InteractionFilter) ([]*domain.Interaction, error) {
	query := `SELECT id, user_id, kind, prompt, response, provider, model,
		latency_ms, input_tokens, output_tokens, success, error_message, created_at
		FROM interactions WHERE user_id = ?`
	args := []any{userID}
	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	query += ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Interaction
	for rows.Next() {
		var i domain.Interaction
		var kind, createdAt string
		var success int
		if err := rows.Scan(
			&i.ID, &i.UserID, &kind, &i.Prompt, &i.Response, &i.Provider, &i.Model,
			&i.LatencyMs, &i.InputTokens, &i.OutputTokens, &success, &i.ErrorMessage, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning interaction row: %w", err)
		}
		i.Kind = domain.InteractionKind(kind)
		i.Success = intToBool(success)
		if i.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interactions: %w", err)
	}
	return out, nil
}
