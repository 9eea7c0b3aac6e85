package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// SQLitePlanRepo implements PlanRepo. Subjects, preferences, sessions and
// analytics are stored as JSON blobs on the plan row.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, user_id, title, description, is_active, overdue_policy,
	subjects, preferences, sessions, analytics, created_at, updated_at`

type planBlobs struct {
	subjects, preferences, sessions, analytics string
}

func encodePlan(p *domain.Plan) (planBlobs, error) {
	var b planBlobs
	var err error
	subjects := p.Subjects
	if subjects == nil {
		subjects = []domain.Subject{}
	}
	sessions := p.Sessions
	if sessions == nil {
		sessions = []domain.Session{}
	}
	if b.subjects, err = marshalBlob("subjects", subjects); err != nil {
		return b, err
	}
	if b.preferences, err = marshalBlob("preferences", p.Preferences); err != nil {
		return b, err
	}
	if b.sessions, err = marshalBlob("sessions", sessions); err != nil {
		return b, err
	}
	if b.analytics, err = marshalBlob("analytics", p.Analytics); err != nil {
		return b, err
	}
	return b, nil
}

func overduePolicyOrDefault(p domain.OverduePolicy) string {
	if p == "" {
		return string(domain.OverdueScheduleToday)
	}
	return string(p)
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	blobs, err := encodePlan(p)
	if err != nil {
		return err
	}
	query := `INSERT INTO plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Title,
		p.Description,
		boolToInt(p.IsActive),
		overduePolicyOrDefault(p.OverduePolicy),
		blobs.subjects,
		blobs.preferences,
		blobs.sessions,
		blobs.analytics,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, userID, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE user_id = ? AND id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, notFoundOr("plan "+id, err)
	}
	return p, nil
}

func (r *SQLitePlanRepo) GetActive(ctx context.Context, userID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE user_id = ? AND is_active = 1`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, notFoundOr("active plan", err)
	}
	return p, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context, userID string) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE user_id = ? ORDER BY updated_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

// Update rewrites every column except is_active, which only SetActive changes.
func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	blobs, err := encodePlan(p)
	if err != nil {
		return err
	}
	query := `UPDATE plans SET title = ?, description = ?, overdue_policy = ?,
		subjects = ?, preferences = ?, sessions = ?, analytics = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Title,
		p.Description,
		overduePolicyOrDefault(p.OverduePolicy),
		blobs.subjects,
		blobs.preferences,
		blobs.sessions,
		blobs.analytics,
		formatTime(p.UpdatedAt),
		p.UserID,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return requireAffected("plan "+p.ID, res)
}

// SetActive makes id the user's only active plan. Run it inside a unit of
// work so a missing plan leaves the previous active plan untouched.
func (r *SQLitePlanRepo) SetActive(ctx context.Context, userID, id string) error {
	now := formatTime(time.Now())
	if _, err := r.db.ExecContext(ctx,
		`UPDATE plans SET is_active = 0, updated_at = ? WHERE user_id = ? AND is_active = 1 AND id != ?`,
		now, userID, id); err != nil {
		return fmt.Errorf("deactivating plans: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET is_active = 1, updated_at = ? WHERE user_id = ? AND id = ?`,
		now, userID, id)
	if err != nil {
		return fmt.Errorf("activating plan: %w", err)
	}
	return requireAffected("plan "+id, res)
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return requireAffected("plan "+id, res)
}

func scanPlan(row rowScanner) (*domain.Plan, error) {
	var p domain.Plan
	var isActive int
	var policy, createdAt, updatedAt string
	var blobs planBlobs

	if err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &isActive, &policy,
		&blobs.subjects, &blobs.preferences, &blobs.sessions, &blobs.analytics,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	p.IsActive = intToBool(isActive)
	p.OverduePolicy = domain.OverduePolicy(policy)
	if err := unmarshalBlob("subjects", blobs.subjects, &p.Subjects); err != nil {
		return nil, err
	}
	if err := unmarshalBlob("preferences", blobs.preferences, &p.Preferences); err != nil {
		return nil, err
	}
	if err := unmarshalBlob("sessions", blobs.sessions, &p.Sessions); err != nil {
		return nil, err
	}
	if err := unmarshalBlob("analytics", blobs.analytics, &p.Analytics); err != nil {
		return nil, err
	}

	var err error
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
