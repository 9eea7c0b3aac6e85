package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/testutil"
)

func TestHistoryService_List(t *testing.T) {
	repo := repository.NewSQLiteInteractionRepo(testutil.NewTestDB(t))
	svc := NewHistoryService(repo)
	ctx := context.Background()

	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	kinds := []domain.InteractionKind{domain.InteractionChat, domain.InteractionSearch, domain.InteractionChat}
	for i, kind := range kinds {
		require.NoError(t, repo.Create(ctx, &domain.Interaction{
			ID:        fmt.Sprintf("i-%d", i),
			UserID:    user,
			Kind:      kind,
			Prompt:    fmt.Sprintf("prompt %d", i),
			Success:   true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := svc.List(ctx, user, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "i-2", all[0].ID, "newest first")

	chats, err := svc.List(ctx, user, "chat", 1)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "i-2", chats[0].ID)

	_, err = svc.List(ctx, user, "gossip", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, user, "", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
