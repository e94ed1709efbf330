package catalog_test

import (
	"context"
	"testing"

	"github.com/roselyu365/gamelibrary-managetool/catalog"
	"github.com/roselyu365/gamelibrary-managetool/catalog/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGameByID(t *testing.T) {

	t.Run("second lookup is served from cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockGameRepository(ctrl)
		service := catalog.NewService(repo)
		ctx := context.Background()

		game := catalog.Game{ID: 42, Title: "Mario Kart 8", Platform: "Switch", MaxPlayers: 4}
		repo.EXPECT().GetGameByID(ctx, 42).Return(game, nil).Times(1)

		first, err := service.GameByID(ctx, 42)
		require.Nil(t, err)
		require.Equal(t, game, first)

		second, err := service.GameByID(ctx, 42)
		require.Nil(t, err)
		require.Equal(t, game, second)
	})

	t.Run("not found is not cached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockGameRepository(ctrl)
		service := catalog.NewService(repo)
		ctx := context.Background()

		repo.EXPECT().GetGameByID(ctx, 7).Return(catalog.Game{}, catalog.ErrGameNotFound).Times(2)

		_, err := service.GameByID(ctx, 7)
		require.ErrorIs(t, err, catalog.ErrGameNotFound)

		_, err = service.GameByID(ctx, 7)
		require.ErrorIs(t, err, catalog.ErrGameNotFound)
	})
}

func TestGameExists(t *testing.T) {

	t.Run("known game", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockGameRepository(ctrl)
		service := catalog.NewService(repo)
		ctx := context.Background()

		repo.EXPECT().GetGameByID(ctx, 42).Return(catalog.Game{ID: 42}, nil).Times(1)

		exists, err := service.GameExists(ctx, 42)

		require.Nil(t, err)
		require.True(t, exists)
	})

	t.Run("unknown game is not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockGameRepository(ctrl)
		service := catalog.NewService(repo)
		ctx := context.Background()

		repo.EXPECT().GetGameByID(ctx, 7).Return(catalog.Game{}, catalog.ErrGameNotFound).Times(1)

		exists, err := service.GameExists(ctx, 7)

		require.Nil(t, err)
		require.False(t, exists)
	})

	t.Run("repo error surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockGameRepository(ctrl)
		service := catalog.NewService(repo)
		ctx := context.Background()

		repo.EXPECT().GetGameByID(ctx, 7).Return(catalog.Game{}, assert.AnError).Times(1)

		exists, err := service.GameExists(ctx, 7)

		require.Error(t, err)
		require.False(t, exists)
	})
}
