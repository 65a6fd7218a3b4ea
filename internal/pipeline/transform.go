package pipeline

import (
	"wikigear/internal"
	"wikigear/internal/util"
)

// Transform reshapes scraped records into the published schema. It does
// no I/O.
func Transform(records []internal.RawRecord, p Policy) []internal.FinalRecord {
	out := make([]internal.FinalRecord, 0, len(records))
	for _, r := range records {
		out = append(out, TransformRecord(r, p))
	}
	return out
}

func TransformRecord(r internal.RawRecord, p Policy) internal.FinalRecord {
	rec := internal.FinalRecord{
		Name:      CleanName(r.Title, p.Name),
		URL:       r.URL,
		Level:     r.LevelRequired,
		Tradeable: r.Tradeable,
		NoAuction: r.NoAuction,
		Status:    r.Status,
		Bonuses:   make([]internal.BonusMapping, 0, len(r.Bonuses)),
	}

	if p.CountSockets {
		rec.Sockets = DeriveSocketCount(r.Sockets)
	} else {
		rec.Sockets = internal.Sockets{Labels: r.Sockets}
	}

	if p.DedupeLists {
		rec.Type = dedupeOptional(r.Type)
		rec.School = dedupeOptional(r.School)
		rec.WeavingSchool = dedupeOptional(r.WeavingSchool)
	}

	for _, b := range r.Bonuses {
		rec.Bonuses = append(rec.Bonuses, PairBonus(b, p)...)
	}

	if p.Categories != nil {
		school := CleanCategories(r.Category, *p.Categories)
		rec.SchoolType = &school
	}

	return rec
}

func dedupeOptional(values *[]string) *[]string {
	if values == nil {
		return nil
	}
	out := util.Dedupe(*values)
	return &out
}
