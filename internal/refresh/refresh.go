package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wikigear/internal"
	"wikigear/internal/config"
	"wikigear/internal/pipeline"
	"wikigear/internal/storage"
	"wikigear/internal/wiki"
)

// minInterval bounds how often a full crawl can restart.
const minInterval = time.Minute

// SyncFunc brings one category up to date.
type SyncFunc func(ctx context.Context, category internal.Category) (pipeline.TransformResult, error)

type Service struct {
	db         *storage.DB
	cfg        config.Config
	categories []internal.Category
	sync       SyncFunc
}

func NewService(db *storage.DB, cfg config.Config, categories []internal.Category) (*Service, error) {
	crawler, err := wiki.NewSyncService(db, cfg)
	if err != nil {
		return nil, err
	}
	processor := pipeline.NewProcessingService(db, cfg)

	s := &Service{db: db, cfg: cfg, categories: categories}
	s.sync = func(ctx context.Context, category internal.Category) (pipeline.TransformResult, error) {
		if _, _, err := crawler.CollectLinks(ctx, category); err != nil {
			return pipeline.TransformResult{}, err
		}
		if _, _, err := crawler.ScrapeItems(ctx, category); err != nil {
			return pipeline.TransformResult{}, err
		}
		return processor.TransformCategory(category)
	}
	return s, nil
}

// SyncCategory runs links, scrape and transform for one category.
func (s *Service) SyncCategory(ctx context.Context, category internal.Category) (pipeline.TransformResult, error) {
	res, err := s.sync(ctx, category)
	if err != nil {
		return res, fmt.Errorf("sync %s: %w", category, err)
	}
	return res, nil
}

// Run repeats a full cycle every REFRESH_INTERVAL_SEC, but not more often
// than minInterval, until ctx is done.
// A failing category is logged and the cycle moves on.
func (s *Service) Run(ctx context.Context) error {
	for {
		s.runCycle(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.interval()):
		}
	}
}

func (s *Service) interval() time.Duration {
	d := time.Duration(s.cfg.RefreshIntervalSec) * time.Second
	if d < minInterval {
		return minInterval
	}
	return d
}

func (s *Service) runCycle(ctx context.Context) {
	records := 0
	for _, cat := range s.categories {
		if ctx.Err() != nil {
			return
		}
		res, err := s.SyncCategory(ctx, cat)
		if err != nil {
			slog.ErrorContext(ctx, "refresh cycle error", "category", cat, "error", err)
			continue
		}
		records += res.Records
	}
	_ = s.db.SetMetadata("refresh.last_cycle", time.Now().UTC().Format(time.RFC3339))
	slog.InfoContext(ctx, "refresh cycle done", "categories", len(s.categories), "records", records)
}
