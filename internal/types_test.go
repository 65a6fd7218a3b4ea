package internal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory(" jewels ")
	require.NoError(t, err)
	require.Equal(t, CategoryJewels, got)

	_, err = ParseCategory("boots")
	require.Error(t, err)
}

func TestNestedValueRepeatedIconKeepsFirstPosition(t *testing.T) {
	v := NestedValue(
		IconToken{Icon: "Fire", Token: "1"},
		IconToken{Icon: "Ice", Token: "2"},
		IconToken{Icon: "Fire", Token: "3"},
	)
	require.Equal(t, []IconToken{{Icon: "Fire", Token: "3"}, {Icon: "Ice", Token: "2"}}, v.Pairs())

	blob, err := json.Marshal(BonusMapping{Key: "Resist", Value: v})
	require.NoError(t, err)
	require.Equal(t, `{"Resist":{"Fire":"3","Ice":"2"}}`, string(blob))
}

func TestMarshalKeepsSpecialCharacters(t *testing.T) {
	blob, err := BonusMapping{Key: "Pip & Power", Value: TextValue("<Café>")}.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"Pip & Power":"<Café>"}`, string(blob))
}

func TestSocketsAndSchoolTypeShapes(t *testing.T) {
	two := 2
	blob, err := json.Marshal(Sockets{Count: &two})
	require.NoError(t, err)
	require.Equal(t, `[2]`, string(blob))

	blob, err = json.Marshal(Sockets{})
	require.NoError(t, err)
	require.Equal(t, `[]`, string(blob))

	blob, err = json.Marshal(SchoolType{Values: []string{"Fire"}, Collapsed: true})
	require.NoError(t, err)
	require.Equal(t, `"Fire"`, string(blob))

	blob, err = json.Marshal(SchoolType{Values: []string{"Fire", "Ice"}, Collapsed: true})
	require.NoError(t, err)
	require.Equal(t, `["Fire","Ice"]`, string(blob))

	blob, err = json.Marshal(SchoolType{Values: []string{"Fire"}})
	require.NoError(t, err)
	require.Equal(t, `["Fire"]`, string(blob))
}
