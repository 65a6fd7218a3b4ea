package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"wikigear/internal"
	"wikigear/internal/config"
	"wikigear/internal/storage"
	"wikigear/internal/util"
)

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

type TransformResult struct {
	TraceID    string
	OutputPath string
	Records    int
	Bonuses    int
	XLSXPath   string
}

// TransformCategory reads the raw file of one category, writes the final
// file next to it and replaces the stored copy. A missing or unreadable
// raw file aborts the run with nothing written. The store is replaced
// before the file, so a failed store leaves the previous file in place.
func (s *ProcessingService) TransformCategory(category internal.Category) (TransformResult, error) {
	start := time.Now()
	policy, err := PolicyFor(category)
	if err != nil {
		return TransformResult{}, err
	}

	rawPath := s.cfg.RawPath(category)
	raw, err := util.ReadJSONFile[[]internal.RawRecord](rawPath)
	if err != nil {
		return TransformResult{}, fmt.Errorf("read %s: %w", rawPath, err)
	}
	readMs := float64(time.Since(start).Milliseconds())

	records := Transform(raw, policy)
	bonuses := 0
	for _, r := range records {
		bonuses += len(r.Bonuses)
	}

	res := TransformResult{
		TraceID:    uuid.NewString(),
		OutputPath: s.cfg.FinalPath(category),
		Records:    len(records),
		Bonuses:    bonuses,
	}
	if err := s.db.ReplaceCategoryItems(category, records); err != nil {
		return TransformResult{}, fmt.Errorf("store %s: %w", category, err)
	}
	if err := util.WriteJSONFile(res.OutputPath, records); err != nil {
		return TransformResult{}, fmt.Errorf("write %s: %w", res.OutputPath, err)
	}

	if s.cfg.AutoExportXLSX {
		res.XLSXPath = filepath.Join(s.cfg.OutputDir, string(category)+"_Data.xlsx")
		if err := s.ExportCategory(category, res.XLSXPath); err != nil {
			return TransformResult{}, err
		}
	}

	if err := s.db.InsertRun(res.TraceID, "transform", category,
		map[string]float64{"readMs": readMs, "totalMs": float64(time.Since(start).Milliseconds())},
		map[string]int{"raw": len(raw), "records": res.Records, "bonuses": res.Bonuses},
	); err != nil {
		slog.Warn("run log failed", "trace_id", res.TraceID, "error", err)
	}
	_ = s.db.SetMetadata("pipeline.last_transform."+string(category), time.Now().UTC().Format(time.RFC3339))

	return res, nil
}

// ExportCategory writes the stored records of one category to a workbook.
func (s *ProcessingService) ExportCategory(category internal.Category, outputPath string) error {
	rows, err := s.db.ListItems(category)
	if err != nil {
		return err
	}
	return ExportRecordsToXLSX(rows, outputPath)
}
