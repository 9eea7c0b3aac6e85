package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialRepo_CreateGetList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteMaterialRepo(database)
	ctx := context.Background()

	m := testutil.NewTestMaterial("Cell biology", "Mitochondria are the powerhouse of the cell.")
	m.Source = "bio.md"
	require.NoError(t, repo.Create(ctx, m))

	fetched, err := repo.GetByID(ctx, testutil.TestUserID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Content, fetched.Content)
	assert.Equal(t, "bio.md", fetched.Source)

	list, err := repo.List(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, testutil.TestUserID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudyAidRepo_LatestAndCascade(t *testing.T) {
	database := testutil.NewTestDB(t)
	materials := NewSQLiteMaterialRepo(database)
	aids := NewSQLiteStudyAidRepo(database)
	ctx := context.Background()

	m := testutil.NewTestMaterial("Optics", "Light bends.")
	require.NoError(t, materials.Create(ctx, m))

	base := time.Now().UTC()
	for i, front := range []string{"old", "new"} {
		cards, err := json.Marshal([]domain.Flashcard{{Front: front, Back: "b"}})
		require.NoError(t, err)
		require.NoError(t, aids.Create(ctx, &domain.StudyAid{
			ID:         uuid.New().String(),
			UserID:     testutil.TestUserID,
			MaterialID: m.ID,
			Kind:       domain.AidFlashcards,
			Content:    cards,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	latest, err := aids.Latest(ctx, testutil.TestUserID, m.ID, domain.AidFlashcards)
	require.NoError(t, err)
	var cards []domain.Flashcard
	require.NoError(t, json.Unmarshal(latest.Content, &cards))
	assert.Equal(t, "new", cards[0].Front)

	_, err = aids.Latest(ctx, testutil.TestUserID, m.ID, domain.AidQuiz)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, materials.Delete(ctx, testutil.TestUserID, m.ID))
	all, err := aids.ListByMaterial(ctx, testutil.TestUserID, m.ID)
	require.NoError(t, err)
	assert.Empty(t, all)
}
