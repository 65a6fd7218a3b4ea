package pipeline

import (
	"fmt"

	"wikigear/internal"
)

type PairingKind int

const (
	// PairPositional maps one icon to the whole text, or pairs the first
	// n-1 icons with tokens under the last icon.
	PairPositional PairingKind = iota
	// PairJewelSlots reads fixed icon positions out of the jewel
	// template's duplicated icon blocks.
	PairJewelSlots
	// PairDedupedIcons collapses repeated icons before positional pairing.
	PairDedupedIcons
)

type NameRule int

const (
	NameTrim NameRule = iota
	NameStripParenthetical
	NameStripJewelPrefix
)

// JewelSlot picks icons[Umbrella] as the outer key, icons[Icon] as the
// inner key and tokens[Token] as the value.
type JewelSlot struct {
	Umbrella int
	Icon     int
	Token    int
}

// JewelLayout applies when the token count matches (exactly, or at least
// Tokens with OrMore) and at least MinIcons icons are present.
type JewelLayout struct {
	Tokens   int
	OrMore   bool
	MinIcons int
	Slots    []JewelSlot
}

func (l JewelLayout) matches(tokens, icons int) bool {
	if icons < l.MinIcons {
		return false
	}
	if l.OrMore {
		return tokens >= l.Tokens
	}
	return tokens == l.Tokens
}

type CategoryRule struct {
	StripSchoolItems  bool
	CollapseSingleton bool
}

type Policy struct {
	Category     internal.Category
	NoiseWords   []string
	IconAliases  map[string]string
	Pairing      PairingKind
	KeepEmpty    bool
	JewelLayouts []JewelLayout
	Name         NameRule
	CountSockets bool
	DedupeLists  bool
	// nil omits "School Type" from the output.
	Categories *CategoryRule
}

// Jewel effect lines repeat every icon, so one stat spans four icon slots:
// the inner key at slot 0 and the umbrella at slot 2. A second stat on
// the same line starts at slot 4.
var jewelLayouts = []JewelLayout{
	{Tokens: 1, MinIcons: 4, Slots: []JewelSlot{{Umbrella: 2, Icon: 0, Token: 0}}},
	{Tokens: 2, OrMore: true, MinIcons: 8, Slots: []JewelSlot{
		{Umbrella: 2, Icon: 0, Token: 0},
		{Umbrella: 6, Icon: 4, Token: 1},
	}},
}

var policies = map[internal.Category]Policy{
	internal.CategoryHats: {
		Category:   internal.CategoryHats,
		NoiseWords: []string{"Max"},
		Pairing:    PairPositional,
		Name:       NameStripParenthetical,
		Categories: &CategoryRule{},
	},
	internal.CategoryAthames: {
		Category:   internal.CategoryAthames,
		NoiseWords: []string{"Max"},
		Pairing:    PairPositional,
		Name:       NameStripParenthetical,
		Categories: &CategoryRule{},
	},
	internal.CategoryRobes: {
		Category:     internal.CategoryRobes,
		NoiseWords:   []string{"Max"},
		Pairing:      PairPositional,
		Name:         NameTrim,
		CountSockets: true,
		Categories:   &CategoryRule{StripSchoolItems: true, CollapseSingleton: true},
	},
	internal.CategoryWands: {
		Category:     internal.CategoryWands,
		NoiseWords:   []string{"Max", "Rating"},
		Pairing:      PairDedupedIcons,
		Name:         NameStripParenthetical,
		CountSockets: true,
		Categories:   &CategoryRule{StripSchoolItems: true, CollapseSingleton: true},
	},
	internal.CategoryJewels: {
		Category:     internal.CategoryJewels,
		NoiseWords:   []string{"Max", "Chance", "Rating"},
		IconAliases:  map[string]string{"Damage Alternate": "Damage"},
		Pairing:      PairJewelSlots,
		KeepEmpty:    true,
		JewelLayouts: jewelLayouts,
		Name:         NameStripJewelPrefix,
		DedupeLists:  true,
	},
}

func PolicyFor(cat internal.Category) (Policy, error) {
	p, ok := policies[cat]
	if !ok {
		return Policy{}, fmt.Errorf("no transform policy for category: %s", cat)
	}
	return p, nil
}
