package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

type SQLiteStudyAidRepo struct {
	db db.DBTX
}

func NewSQLiteStudyAidRepo(conn db.DBTX) *SQLiteStudyAidRepo {
	return &SQLiteStudyAidRepo{db: conn}
}

const studyAidColumns = `id, user_id, material_id, kind, content, created_at`

func (r *SQLiteStudyAidRepo) Create(ctx context.Context, a *domain.StudyAid) error {
	query := `INSERT INTO study_aids (` + studyAidColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.MaterialID, string(a.Kind), string(a.Content), formatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting study aid: %w", err)
	}
	return nil
}

func (r *SQLiteStudyAidRepo) ListByMaterial(ctx context.Context, userID, materialID string) ([]*domain.StudyAid, error) {
	query := `SELECT ` + studyAidColumns + ` FROM study_aids
		WHERE user_id = ? AND material_id = ? ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID, materialID)
	if err != nil {
		return nil, fmt.Errorf("listing study aids: %w", err)
	}
	defer rows.Close()

	var out []*domain.StudyAid
	for rows.Next() {
		a, err := scanStudyAid(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning study aid row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study aids: %w", err)
	}
	return out, nil
}

// Latest returns the most recently generated aid of kind for a material.
func (r *SQLiteStudyAidRepo) Latest(ctx context.Context, userID, materialID string, kind domain.StudyAidKind) (*domain.StudyAid, error) {
	query := `SELECT ` + studyAidColumns + ` FROM study_aids
		WHERE user_id = ? AND material_id = ? AND kind = ? ORDER BY created_at DESC, id LIMIT 1`
	a, err := scanStudyAid(r.db.QueryRowContext(ctx, query, userID, materialID, string(kind)))
	if err != nil {
		return nil, notFoundOr(fmt.Sprintf("%s for material %s", kind, materialID), err)
	}
	return a, nil
}

func scanStudyAid(row rowScanner) (*domain.StudyAid, error) {
	var a domain.StudyAid
	var kind, content, createdAt string
	if err := row.Scan(&a.ID, &a.UserID, &a.MaterialID, &kind, &content, &createdAt); err != nil {
		return nil, err
	}
	a.Kind = domain.StudyAidKind(kind)
	a.Content = json.RawMessage(content)
	var err error
	if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}
