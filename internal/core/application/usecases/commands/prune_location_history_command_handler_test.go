package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
)

func TestNewPruneLocationHistoryCommand(t *testing.T) {
	t.Run("valid retention", func(t *testing.T) {
		cmd, err := commands.NewPruneLocationHistoryCommand(24 * time.Hour)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, 24*time.Hour, cmd.Retention())
	})

	t.Run("zero retention rejected", func(t *testing.T) {
		_, err := commands.NewPruneLocationHistoryCommand(0)

		require.Error(t, err)
	})

	t.Run("zero value command fails validation", func(t *testing.T) {
		var cmd commands.PruneLocationHistoryCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrPruneLocationHistoryCommandIsNotConstructed)
	})
}

func TestPruneLocationHistoryCommandHandler_Handle(t *testing.T) {
	t.Run("sweeps old samples", func(t *testing.T) {
		trackRepo := new(MockTrackRepository)
		uow := new(MockUoW)
		factory := new(MockTrackUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("TrackRepository").Return(trackRepo).Once()
		trackRepo.On("PruneOlderThan", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
			expected := time.Now().UTC().Add(-24 * time.Hour)
			return cutoff.Sub(expected).Abs() < time.Minute
		})).Return(int64(7), nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		handler := commands.NewPruneLocationHistoryCommandHandler(factory)
		cmd, err := commands.NewPruneLocationHistoryCommand(24 * time.Hour)
		require.NoError(t, err)

		deleted, err := handler.Handle(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(7), deleted)
		mock.AssertExpectationsForObjects(t, factory, uow, trackRepo)
	})

	t.Run("prune error rolls back", func(t *testing.T) {
		trackRepo := new(MockTrackRepository)
		uow := new(MockUoW)
		factory := new(MockTrackUoWFactory)

		pruneErr := errors.New("disk failure")
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("TrackRepository").Return(trackRepo).Once()
		trackRepo.On("PruneOlderThan", mock.Anything, mock.Anything).Return(int64(0), pruneErr).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()

		handler := commands.NewPruneLocationHistoryCommandHandler(factory)
		cmd, err := commands.NewPruneLocationHistoryCommand(24 * time.Hour)
		require.NoError(t, err)

		_, err = handler.Handle(context.Background(), cmd)

		require.ErrorIs(t, err, pruneErr)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		mock.AssertExpectationsForObjects(t, factory, uow, trackRepo)
	})

	t.Run("unconstructed command rejected", func(t *testing.T) {
		handler := commands.NewPruneLocationHistoryCommandHandler(new(MockTrackUoWFactory))

		_, err := handler.Handle(context.Background(), commands.PruneLocationHistoryCommand{})

		require.ErrorIs(t, err, commands.ErrPruneLocationHistoryCommandIsNotConstructed)
	})
}
