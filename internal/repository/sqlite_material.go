package repository

import (
	"context"
	"fmt"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

type SQLiteMaterialRepo struct {
	db db.DBTX
}

func NewSQLiteMaterialRepo(conn db.DBTX) *SQLiteMaterialRepo {
	return &SQLiteMaterialRepo{db: conn}
}

const materialColumns = `id, user_id, subject_id, title, source, content, created_at`

func (r *SQLiteMaterialRepo) Create(ctx context.Context, m *domain.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.SubjectID, m.Title, m.Source, m.Content, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting material: %w", err)
	}
	return nil
}

func (r *SQLiteMaterialRepo) GetByID(ctx context.Context, userID, id string) (*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE user_id = ? AND id = ?`
	m, err := scanMaterial(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, notFoundOr("material "+id, err)
	}
	return m, nil
}

func (r *SQLiteMaterialRepo) List(ctx context.Context, userID string) ([]*domain.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE user_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()

	var materials []*domain.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating materials: %w", err)
	}
	return materials, nil
}

func (r *SQLiteMaterialRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM materials WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting material: %w", err)
	}
	return requireAffected("material "+id, res)
}

func scanMaterial(row rowScanner) (*domain.Material, error) {
	var m domain.Material
	var createdAt string
	if err := row.Scan(&m.ID, &m.UserID, &m.SubjectID, &m.Title, &m.Source, &m.Content, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &m, nil
}
