package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSettleAll(t *testing.T) {
	t.Run("waits for every task regardless of failures", func(t *testing.T) {
		boom := errors.New("boom")
		tasks := []Task[int]{
			{ID: "fast-fail", Run: func(ctx context.Context) (int, error) {
				return 0, boom
			}},
			{ID: "slow-ok", Run: func(ctx context.Context) (int, error) {
				time.Sleep(20 * time.Millisecond)
				return 2, nil
			}},
			{ID: "panics", Run: func(ctx context.Context) (int, error) {
				panic("unexpected")
			}},
			{ID: "ok", Run: func(ctx context.Context) (int, error) {
				return 4, nil
			}},
		}

		outcomes := SettleAll(context.Background(), tasks)
		require.Len(t, outcomes, 4)

		require.ErrorIs(t, outcomes["fast-fail"].Err, boom)
		require.NoError(t, outcomes["slow-ok"].Err)
		require.Equal(t, 2, outcomes["slow-ok"].Value)
		require.Error(t, outcomes["panics"].Err)
		require.NoError(t, outcomes["ok"].Err)
		require.Equal(t, 4, outcomes["ok"].Value)
	})

	t.Run("no tasks", func(t *testing.T) {
		outcomes := SettleAll[int](context.Background(), nil)
		require.Empty(t, outcomes)
	})
}
