package pipeline

import (
	"strings"

	"wikigear/internal"
	"wikigear/internal/util"
)

// CleanBonusText trims the text and removes the policy's noise words.
func CleanBonusText(text string, noise []string) string {
	return strings.TrimSpace(util.RemoveWords(strings.TrimSpace(text), noise))
}

func SplitTokens(text string) []string {
	return strings.Fields(text)
}

func relabelIcons(icons []string, aliases map[string]string) []string {
	out := make([]string, len(icons))
	for i, icon := range icons {
		if alias, ok := aliases[icon]; ok {
			icon = alias
		}
		out[i] = icon
	}
	return out
}

// PairBonus turns one scraped bonus line into zero or more mappings
// according to the category policy. Every mapping goes through
// SwapWizards before it is returned.
func PairBonus(bonus internal.RawBonus, p Policy) []internal.BonusMapping {
	text := CleanBonusText(bonus.Bonus, p.NoiseWords)
	icons := relabelIcons(bonus.Icons, p.IconAliases)

	if !p.KeepEmpty && (text == "" || len(icons) == 0) {
		return nil
	}

	var out []internal.BonusMapping
	switch p.Pairing {
	case PairJewelSlots:
		out = pairJewel(text, icons, p.JewelLayouts)
	case PairDedupedIcons:
		out = []internal.BonusMapping{pairDeduped(text, icons)}
	default:
		out = []internal.BonusMapping{pairPositional(text, icons)}
	}

	for i := range out {
		out[i] = SwapWizards(out[i])
	}
	return out
}

// pairPositional expects len(icons) >= 1.
func pairPositional(text string, icons []string) internal.BonusMapping {
	if len(icons) == 1 {
		return internal.BonusMapping{Key: icons[0], Value: internal.TextValue(text)}
	}
	return umbrella(icons, SplitTokens(text))
}

// umbrella pairs icons[:n-1] with tokens positionally, padding with ""
// when tokens run out, and keys the result by the last icon.
func umbrella(icons, tokens []string) internal.BonusMapping {
	n := len(icons) - 1
	pairs := make([]internal.IconToken, 0, n)
	for i := 0; i < n; i++ {
		token := ""
		if i < len(tokens) {
			token = tokens[i]
		}
		pairs = append(pairs, internal.IconToken{Icon: icons[i], Token: token})
	}
	return internal.BonusMapping{Key: icons[n], Value: internal.NestedValue(pairs...)}
}

func pairDeduped(text string, icons []string) internal.BonusMapping {
	tokens := SplitTokens(text)
	deduped := util.Dedupe(icons)
	if len(deduped) > 1 && len(tokens) == len(deduped)-1 {
		return umbrella(deduped, tokens)
	}
	return pairPositional(text, icons)
}

func pairJewel(text string, icons []string, layouts []JewelLayout) []internal.BonusMapping {
	tokens := SplitTokens(text)
	for _, layout := range layouts {
		if !layout.matches(len(tokens), len(icons)) {
			continue
		}
		out := make([]internal.BonusMapping, 0, len(layout.Slots))
		for _, slot := range layout.Slots {
			out = append(out, internal.BonusMapping{
				Key:   icons[slot.Umbrella],
				Value: internal.NestedValue(internal.IconToken{Icon: icons[slot.Icon], Token: tokens[slot.Token]}),
			})
		}
		return out
	}

	// An unmatched line with no icons is keyed by "", which downstream
	// consumers treat as an unmapped bonus.
	key := ""
	if len(icons) > 0 {
		key = icons[0]
	}
	return []internal.BonusMapping{{Key: key, Value: internal.TextValue(text)}}
}

// SwapWizards flips {class: "Wizards Cannot Use"} into
// {"Wizards Cannot Use": class}. Anything else is returned unchanged.
func SwapWizards(m internal.BonusMapping) internal.BonusMapping {
	if m.Value.IsNested() || m.Value.Text() != internal.WizardsCannotUse {
		return m
	}
	return internal.BonusMapping{Key: internal.WizardsCannotUse, Value: internal.TextValue(m.Key)}
}
