package wiki

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wikigear/internal"
	"wikigear/internal/config"
	"wikigear/internal/storage"
	"wikigear/internal/util"
)

type SyncService struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
}

func NewSyncService(db *storage.DB, cfg config.Config) (*SyncService, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &SyncService{db: db, client: client, cfg: cfg}, nil
}

// CollectLinks crawls the category listing and writes the link file.
func (s *SyncService) CollectLinks(ctx context.Context, category internal.Category) (string, int, error) {
	links, err := s.client.CategoryLinks(ctx, category)
	if err != nil {
		return "", 0, fmt.Errorf("collect %s links: %w", category, err)
	}

	path := s.cfg.LinksPath(category)
	if err := util.WriteJSONFile(path, links); err != nil {
		return "", 0, err
	}
	_ = s.db.SetMetadata("wiki.last_links."+string(category), time.Now().UTC().Format(time.RFC3339))
	return path, len(links), nil
}

// ScrapeItems fetches every linked item page and writes the raw record
// file. Pages that fail to download are logged and skipped.
func (s *SyncService) ScrapeItems(ctx context.Context, category internal.Category) (string, int, error) {
	linksPath := s.cfg.LinksPath(category)
	links, err := util.ReadJSONFile[[]internal.ItemLink](linksPath)
	if err != nil {
		return "", 0, fmt.Errorf("read links %s: %w", linksPath, err)
	}

	records := make([]internal.RawRecord, 0, len(links))
	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}

		title := link.Title
		if title == "" {
			title = fmt.Sprintf("item_%d", i+1)
		}
		if util.IsNavigationTitle(title) {
			slog.DebugContext(ctx, "skipping navigation link", "title", title)
			continue
		}
		title = strings.TrimSpace(strings.TrimPrefix(title, "Item:"))

		if link.URL == "" {
			slog.WarnContext(ctx, "link has no url", "title", title)
			continue
		}

		slog.InfoContext(ctx, "fetching item page", "url", link.URL)
		doc, err := s.client.FetchPage(ctx, link.URL)
		if err != nil {
			if ctx.Err() != nil {
				return "", 0, ctx.Err()
			}
			slog.WarnContext(ctx, "item page fetch failed", "url", link.URL, "error", err)
			continue
		}

		rec, found := ExtractItem(doc, link.URL, title)
		if !found {
			slog.WarnContext(ctx, "info box not found", "title", title)
		}
		records = append(records, rec)
	}

	path := s.cfg.RawPath(category)
	if err := util.WriteJSONFile(path, records); err != nil {
		return "", 0, err
	}
	_ = s.db.SetMetadata("wiki.last_scrape."+string(category), time.Now().UTC().Format(time.RFC3339))
	return path, len(records), nil
}
