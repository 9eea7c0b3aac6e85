package db_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
)

const insertCourse = `INSERT INTO courses (id, user_id, name, credits, grade, created_at) VALUES (?, 'u1', ?, 3, 'A', '2026-10-19T00:00:00Z')`

func countCourses(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&n))
	return n
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	conn := openMemory(t)
	uow := db.NewSQLiteUnitOfWork(conn)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertCourse, "c1", "Calculus"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insertCourse, "c2", "History")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countCourses(t, conn))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	conn := openMemory(t)
	uow := db.NewSQLiteUnitOfWork(conn)
	boom := errors.New("grade lookup failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertCourse, "c1", "Calculus"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countCourses(t, conn))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	conn := openMemory(t)
	uow := db.NewSQLiteUnitOfWork(conn)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertCourse, "c1", "Calculus")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countCourses(t, conn))
}

func TestOpenDB_ForeignKeysOnEveryConnection(t *testing.T) {
	conn, err := db.OpenDB(filepath.Join(t.TempDir(), "nested", "scholar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetMaxOpenConns(4)

	ctx := context.Background()
	// Hold several connections open so the pool has to create new ones.
	var held []*sql.Conn
	for range 3 {
		c, err := conn.Conn(ctx)
		require.NoError(t, err)
		held = append(held, c)
	}
	for _, c := range held {
		var fk int
		require.NoError(t, c.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		assert.Equal(t, 1, fk)
		c.Close()
	}

	_, err = conn.Exec(`INSERT INTO study_aids (id, user_id, material_id, kind, content, created_at)
		VALUES ('a1', 'u1', 'missing', 'notes', '{}', '2026-10-19T00:00:00Z')`)
	assert.Error(t, err, "study aid must reference an existing material")
}
