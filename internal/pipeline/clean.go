package pipeline

import (
	"regexp"
	"strings"

	"wikigear/internal"
	"wikigear/internal/util"
)

const (
	categoryPrefix    = "/wiki/Category:"
	schoolItemsSuffix = "_School_Items"
	spellsMarker      = "_Spells"
)

var reJewelPrefix = regexp.MustCompile(`^Jewel:`)

// CleanCategories strips the wiki link prefix, optionally the
// _School_Items suffix, drops spell categories and dedupes. Running it on
// its own output yields the same result.
func CleanCategories(raw []string, rule CategoryRule) internal.SchoolType {
	cleaned := make([]string, 0, len(raw))
	for _, cat := range raw {
		cat = strings.TrimPrefix(cat, categoryPrefix)
		if rule.StripSchoolItems {
			cat = strings.ReplaceAll(cat, schoolItemsSuffix, "")
		}
		if strings.Contains(cat, spellsMarker) {
			continue
		}
		cleaned = append(cleaned, cat)
	}
	return internal.SchoolType{
		Values:    util.Dedupe(cleaned),
		Collapsed: rule.CollapseSingleton,
	}
}

// DeriveSocketCount keeps only max(len(sockets)-1, 0).
func DeriveSocketCount(sockets []string) internal.Sockets {
	count := len(sockets) - 1
	if count < 0 {
		count = 0
	}
	return internal.Sockets{Count: &count}
}

func CleanName(title string, rule NameRule) string {
	switch rule {
	case NameStripParenthetical:
		return util.StripParenthetical(title)
	case NameStripJewelPrefix:
		return strings.TrimSpace(reJewelPrefix.ReplaceAllString(title, ""))
	default:
		return strings.TrimSpace(title)
	}
}
