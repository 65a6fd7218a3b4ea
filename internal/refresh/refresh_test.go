package refresh

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wikigear/internal"
	"wikigear/internal/config"
	"wikigear/internal/pipeline"
	"wikigear/internal/storage"
)

func TestRunContinuesPastFailingCategory(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "wikigear.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var synced []internal.Category
	svc := &Service{
		db:         db,
		cfg:        config.Config{RefreshIntervalSec: 3600},
		categories: []internal.Category{internal.CategoryHats, internal.CategoryWands},
		sync: func(_ context.Context, category internal.Category) (pipeline.TransformResult, error) {
			synced = append(synced, category)
			if category == internal.CategoryHats {
				return pipeline.TransformResult{}, errors.New("wiki down")
			}
			cancel()
			return pipeline.TransformResult{Records: 3}, nil
		},
	}

	require.NoError(t, svc.Run(ctx))
	require.Equal(t, []internal.Category{internal.CategoryHats, internal.CategoryWands}, synced)

	last, err := db.GetMetadata("refresh.last_cycle")
	require.NoError(t, err)
	require.NotNil(t, last)
}

func TestSyncCategoryWrapsError(t *testing.T) {
	boom := errors.New("boom")
	svc := &Service{sync: func(context.Context, internal.Category) (pipeline.TransformResult, error) {
		return pipeline.TransformResult{}, boom
	}}

	_, err := svc.SyncCategory(context.Background(), internal.CategoryRobes)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "sync Robes")
}

func TestIntervalHasFloor(t *testing.T) {
	for _, sec := range []int{-5, 0, 1} {
		svc := &Service{cfg: config.Config{RefreshIntervalSec: sec}}
		require.Equal(t, minInterval, svc.interval(), sec)
	}

	svc := &Service{cfg: config.Config{RefreshIntervalSec: 3600}}
	require.Equal(t, time.Hour, svc.interval())
}
