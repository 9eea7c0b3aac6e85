package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"plans", "courses", "materials", "interactions", "study_aids"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_plans_user",
		"idx_plans_one_active",
		"idx_courses_user",
		"idx_materials_user",
		"idx_interactions_user",
		"idx_study_aids_material",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsOverduePolicyColumn(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, user_id, title, created_at, updated_at) VALUES ('p1', 'u1', 'Finals', 'now', 'now')`)
	require.NoError(t, err)

	var policy string
	require.NoError(t, db.QueryRow(`SELECT overdue_policy FROM plans WHERE id = 'p1'`).Scan(&policy))
	assert.Equal(t, "schedule_today", policy)
}

func TestMigrate_OneActivePlanPerUser(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO plans (id, user_id, title, is_active, created_at, updated_at) VALUES (?, ?, 'x', ?, 'now', 'now')`
	_, err := db.Exec(insert, "p1", "u1", 1)
	require.NoError(t, err)
	_, err = db.Exec(insert, "p2", "u2", 1)
	require.NoError(t, err, "other users keep their own active plan")
	_, err = db.Exec(insert, "p3", "u1", 0)
	require.NoError(t, err)

	_, err = db.Exec(insert, "p4", "u1", 1)
	assert.Error(t, err, "second active plan for the same user must be rejected")
}

func TestMigrate_StudyAidsCascadeWithMaterial(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO materials (id, user_id, title, content, created_at) VALUES ('m1', 'u1', 'Notes', 'text', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO study_aids (id, user_id, material_id, kind, content, created_at) VALUES ('a1', 'u1', 'm1', 'quiz', '[]', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM materials WHERE id = 'm1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM study_aids`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestMigrate_RejectsUnknownInteractionKind(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO interactions (id, user_id, kind, created_at) VALUES ('i1', 'u1', 'gossip', 'now')`)
	assert.Error(t, err)
}
