package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/testutil"
)

func TestMaterialService_Lifecycle(t *testing.T) {
	svc := NewMaterialService(repository.NewSQLiteMaterialRepo(testutil.NewTestDB(t)))
	ctx := context.Background()

	m, err := svc.Create(ctx, user, contract.CreateMaterialRequest{Title: "Week 1", Content: "Limits and continuity."})
	require.NoError(t, err)

	got, err := svc.Get(ctx, user, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Limits and continuity.", got.Content)

	_, err = svc.Get(ctx, "intruder", m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	list, err := svc.List(ctx, user)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, user, m.ID))
	_, err = svc.Get(ctx, user, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMaterialService_Create_Validates(t *testing.T) {
	svc := NewMaterialService(repository.NewSQLiteMaterialRepo(testutil.NewTestDB(t)))

	_, err := svc.Create(context.Background(), user, contract.CreateMaterialRequest{Title: "Empty"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
