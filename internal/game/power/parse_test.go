package power_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/scox/internal/game/power"
)

func TestParseRows_FullRow(t *testing.T) {
	rows, err := power.ParseRows([][]string{
		{"[1,2,3]", "{Flammes:[false,2,2 PP]|Aura de Peur:[true,0,1 PP]}", "1", "{Baal:3|Andromalius:2}"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, []int{1, 2, 3}, row.Faces)
	assert.Equal(t, 1, row.PP)
	assert.Equal(t, map[string]int{"Baal": 3, "Andromalius": 2}, row.Bonus)

	require.Len(t, row.Powers, 2)
	assert.Equal(t, power.Candidate{Name: "Flammes", Flat: false, Rank: 2, Cost: "2 PP"}, row.Powers[0])
	assert.Equal(t, power.Candidate{Name: "Aura de Peur", Flat: true, Rank: 0, Cost: "1 PP"}, row.Powers[1])
}

func TestParseRows_EmptyBonus(t *testing.T) {
	rows, err := power.ParseRows([][]string{
		{"[4]", "{Vol:[false,1,-]}", "2", "{}"},
		{"[5]", "{Regard:[true,0,-]}", "2", ""},
		{"[6]", "{Griffes:[false,2,-]}", "0"},
	})
	require.NoError(t, err)
	for _, row := range rows {
		assert.Nil(t, row.Bonus)
	}
}

func TestParseRows_CostMayContainCommas(t *testing.T) {
	rows, err := power.ParseRows([][]string{
		{"[1]", "{Metamorphose:[false,1,1 PP, puis 1 PP par tour]}", "1", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "1 PP, puis 1 PP par tour", rows[0].Powers[0].Cost)
}

func TestParseRows_Malformed(t *testing.T) {
	cases := map[string][]string{
		"missing brackets":   {"1,2", "{A:[true,0,-]}", "1", ""},
		"empty faces":        {"[]", "{A:[true,0,-]}", "1", ""},
		"bad face":           {"[x]", "{A:[true,0,-]}", "1", ""},
		"missing power spec": {"[1]", "{A}", "1", ""},
		"bad flat flag":      {"[1]", "{A:[maybe,0,-]}", "1", ""},
		"bad rank":           {"[1]", "{A:[true,x,-]}", "1", ""},
		"bad pp":             {"[1]", "{A:[true,0,-]}", "x", ""},
		"bad bonus":          {"[1]", "{A:[true,0,-]}", "1", "{Baal}"},
		"short record":       {"[1]", "{A:[true,0,-]}"},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := power.ParseRows([][]string{rec})
			require.Error(t, err)
		})
	}
}
