package repository

import (
	"context"
	"fmt"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.Course) error {
	query := `INSERT INTO courses (id, user_id, name, code, credits, grade, term, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Code, c.Credits, c.Grade, c.Term, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}
	return nil
}

func (r *SQLiteCourseRepo) List(ctx context.Context, userID string) ([]*domain.Course, error) {
	query := `SELECT id, user_id, name, code, credits, grade, term, created_at
		FROM courses WHERE user_id = ? ORDER BY term, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		var c domain.Course
		var createdAt string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Code, &c.Credits, &c.Grade, &c.Term, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return courses, nil
}

func (r *SQLiteCourseRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return requireAffected("course "+id, res)
}
