package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryHats    Category = "Hats"
	CategoryJewels  Category = "Jewels"
	CategoryRobes   Category = "Robes"
	CategoryWands   Category = "Wands"
	CategoryAthames Category = "Athames"
)

var AllCategories = []Category{CategoryHats, CategoryJewels, CategoryRobes, CategoryWands, CategoryAthames}

func ParseCategory(input string) (Category, error) {
	needle := strings.TrimSpace(input)
	for _, c := range AllCategories {
		if strings.EqualFold(needle, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s", input)
}

const (
	StatusActive  = "Active"
	StatusRetired = "Retired"
)

// WizardsCannotUse is the bonus text the wiki renders for a school
// restriction. Mappings carrying it are flipped so the sentinel becomes
// the key.
const WizardsCannotUse = "Wizards Cannot Use"

type ItemLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type RawBonus struct {
	Bonus string   `json:"bonus"`
	Icons []string `json:"icons"`
}

type RawRecord struct {
	URL            string            `json:"url"`
	Title          string            `json:"title"`
	LevelRequired  string            `json:"level_required,omitempty"`
	Bonuses        []RawBonus        `json:"bonuses"`
	Sockets        []string          `json:"sockets"`
	Type           *[]string         `json:"type,omitempty"`
	School         *[]string         `json:"school,omitempty"`
	WeavingSchool  *[]string         `json:"weaving_school,omitempty"`
	AdditionalInfo map[string]string `json:"additional_info,omitempty"`
	Tradeable      bool              `json:"tradeable"`
	NoAuction      bool              `json:"no_auction"`
	Status         string            `json:"status"`
	Category       []string          `json:"category"`
}

type FinalRecord struct {
	Name          string         `json:"Name"`
	URL           string         `json:"url"`
	Level         string         `json:"level"`
	Tradeable     bool           `json:"tradeable"`
	NoAuction     bool           `json:"no_auction"`
	Status        string         `json:"status"`
	Sockets       Sockets        `json:"sockets"`
	Type          *[]string      `json:"type,omitempty"`
	School        *[]string      `json:"school,omitempty"`
	WeavingSchool *[]string      `json:"weaving_school,omitempty"`
	Bonuses       []BonusMapping `json:"bonuses"`
	SchoolType    *SchoolType    `json:"School Type,omitempty"`
}

// Sockets is either the scraped socket labels or, when Count is set, a
// single derived socket count.
type Sockets struct {
	Labels []string
	Count  *int
}

func (s Sockets) MarshalJSON() ([]byte, error) {
	if s.Count != nil {
		return json.Marshal([]int{*s.Count})
	}
	return marshalStrings(s.Labels)
}

// SchoolType is the cleaned category list. A collapsed single entry is
// written as a bare string.
type SchoolType struct {
	Values    []string
	Collapsed bool
}

func (s SchoolType) MarshalJSON() ([]byte, error) {
	if s.Collapsed && len(s.Values) == 1 {
		return marshalString(s.Values[0])
	}
	return marshalStrings(s.Values)
}

type IconToken struct {
	Icon  string
	Token string
}

// BonusValue is either plain text or an ordered icon->token mapping.
type BonusValue struct {
	text   string
	pairs  []IconToken
	nested bool
}

func TextValue(text string) BonusValue {
	return BonusValue{text: text}
}

// NestedValue builds an ordered mapping. A repeated icon keeps its first
// position and takes the later token.
func NestedValue(pairs ...IconToken) BonusValue {
	v := BonusValue{nested: true, pairs: make([]IconToken, 0, len(pairs))}
	for _, p := range pairs {
		v.put(p.Icon, p.Token)
	}
	return v
}

func (v *BonusValue) put(icon, token string) {
	for i := range v.pairs {
		if v.pairs[i].Icon == icon {
			v.pairs[i].Token = token
			return
		}
	}
	v.pairs = append(v.pairs, IconToken{Icon: icon, Token: token})
}

func (v BonusValue) IsNested() bool { return v.nested }

func (v BonusValue) Text() string { return v.text }

func (v BonusValue) Pairs() []IconToken {
	out := make([]IconToken, len(v.pairs))
	copy(out, v.pairs)
	return out
}

func (v BonusValue) MarshalJSON() ([]byte, error) {
	if !v.nested {
		return marshalString(v.text)
	}
	buf := bytes.NewBufferString("{")
	for i, p := range v.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(buf, p.Icon, p.Token); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// BonusMapping is a single-key object: icon label -> BonusValue.
type BonusMapping struct {
	Key   string
	Value BonusValue
}

func (m BonusMapping) MarshalJSON() ([]byte, error) {
	key, err := marshalString(m.Key)
	if err != nil {
		return nil, err
	}
	value, err := m.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBufferString("{")
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(value)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKeyValue(buf *bytes.Buffer, key, value string) error {
	k, err := marshalString(key)
	if err != nil {
		return err
	}
	v, err := marshalString(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(values); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type ItemRow struct {
	Category   string
	URL        string
	Name       string
	Level      string
	Status     string
	Tradeable  bool
	NoAuction  bool
	BonusCount int
	RecordJSON string
}

type CategoryCount struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
}

type StatusCount struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
}
