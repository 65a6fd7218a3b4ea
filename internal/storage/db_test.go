package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wikigear/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "wikigear.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func record(name, url, status string, bonuses ...internal.BonusMapping) internal.FinalRecord {
	if bonuses == nil {
		bonuses = []internal.BonusMapping{}
	}
	return internal.FinalRecord{
		Name:    name,
		URL:     url,
		Level:   "10",
		Status:  status,
		Bonuses: bonuses,
	}
}

func TestReplaceCategoryItemsKeepsOrderAndReplaces(t *testing.T) {
	db := openTestDB(t)

	first := []internal.FinalRecord{
		record("Zebra Hat", "https://wiki.test/wiki/Item:Zebra_Hat", internal.StatusActive,
			internal.BonusMapping{Key: "Health", Value: internal.TextValue("+10")}),
		record("Apple Hat", "https://wiki.test/wiki/Item:Apple_Hat", internal.StatusRetired),
	}
	require.NoError(t, db.ReplaceCategoryItems(internal.CategoryHats, first))

	rows, err := db.ListItems(internal.CategoryHats)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Zebra Hat", rows[0].Name)
	require.Equal(t, 1, rows[0].BonusCount)
	require.Equal(t, "Apple Hat", rows[1].Name)
	require.Equal(t, internal.StatusRetired, rows[1].Status)

	second := []internal.FinalRecord{record("Only Hat", "https://wiki.test/wiki/Item:Only_Hat", internal.StatusActive)}
	require.NoError(t, db.ReplaceCategoryItems(internal.CategoryHats, second))

	blobs, err := db.ListItemJSON(internal.CategoryHats)
	require.NoError(t, err)
	require.Len(t, blobs, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(blobs[0], &decoded))
	require.Equal(t, "Only Hat", decoded["Name"])
	require.Equal(t, []any{}, decoded["bonuses"])
}

func TestCountsAcrossCategories(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.ReplaceCategoryItems(internal.CategoryHats, []internal.FinalRecord{
		record("A", "a", internal.StatusActive),
		record("B", "b", internal.StatusRetired),
		record("C", "c", internal.StatusActive),
	}))
	require.NoError(t, db.ReplaceCategoryItems(internal.CategoryWands, []internal.FinalRecord{
		record("W", "w", internal.StatusActive),
	}))

	cats, err := db.CategoryCounts()
	require.NoError(t, err)
	require.Equal(t, []internal.CategoryCount{{Category: "Hats", Items: 3}, {Category: "Wands", Items: 1}}, cats)

	statuses, err := db.StatusCounts()
	require.NoError(t, err)
	require.Equal(t, []internal.StatusCount{
		{Category: "Hats", Status: internal.StatusActive, Count: 2},
		{Category: "Hats", Status: internal.StatusRetired, Count: 1},
		{Category: "Wands", Status: internal.StatusActive, Count: 1},
	}, statuses)
}

func TestMetadataAndRuns(t *testing.T) {
	db := openTestDB(t)

	missing, err := db.GetMetadata("wiki.last_scrape.Hats")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, db.SetMetadata("wiki.last_scrape.Hats", "one"))
	require.NoError(t, db.SetMetadata("wiki.last_scrape.Hats", "two"))
	got, err := db.GetMetadata("wiki.last_scrape.Hats")
	require.NoError(t, err)
	require.Equal(t, "two", *got)

	require.NoError(t, db.InsertRun("trace-1", "transform", internal.CategoryHats, map[string]float64{"totalMs": 1}, map[string]int{"records": 2}))
	n, err := db.CountRuns("transform")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestReplaceCategoryItemsKeepsSharedAndEmptyURLs(t *testing.T) {
	db := openTestDB(t)

	records := []internal.FinalRecord{
		record("A", "https://wiki.test/wiki/Item:Same", internal.StatusActive),
		record("B", "https://wiki.test/wiki/Item:Same", internal.StatusActive),
		record("C", "", internal.StatusActive),
		record("D", "", internal.StatusRetired),
	}
	require.NoError(t, db.ReplaceCategoryItems(internal.CategoryHats, records))

	blobs, err := db.ListItemJSON(internal.CategoryHats)
	require.NoError(t, err)
	require.Len(t, blobs, len(records))

	rows, err := db.ListItems(internal.CategoryHats)
	require.NoError(t, err)
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"A", "B", "C", "D"}, names)

	cats, err := db.CategoryCounts()
	require.NoError(t, err)
	require.Equal(t, []internal.CategoryCount{{Category: "Hats", Items: 4}}, cats)
}
