package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/scox/internal/game/catalogue"
	"github.com/cory-johannsen/scox/internal/game/character"
	"github.com/cory-johannsen/scox/internal/game/profile"
)

func newTestCharacter(t *testing.T, nature profile.Nature) *character.Character {
	t.Helper()
	c, err := character.New("Asmodee", nature, 0, catalogue.Default())
	require.NoError(t, err)
	return c
}

func TestNew_InitializesCatalogue(t *testing.T) {
	c := newTestCharacter(t, profile.NatureDemon)

	assert.Equal(t, 6, c.Profile.Attributes.Len())
	for _, a := range c.Profile.Attributes.Values() {
		assert.Equal(t, 4, a.BaseRank, "attribute %s", a.Name)
		assert.Equal(t, 0, a.Rank, "attribute %s", a.Name)
	}

	assert.Equal(t, []string{"PF", "PP", "BL", "BG", "BF", "MS"}, c.Profile.Values.Keys())
	for _, v := range c.Profile.Values.Values() {
		assert.Equal(t, 0, v.FullRank(), "side value %s", v.Name)
	}

	combat, ok := c.Profile.PrimarySkills.Get("Combat")
	require.True(t, ok)
	require.NotNil(t, combat.Specialization)
	agilite, _ := c.Profile.Attributes.Get(catalogue.AttrAgilite)
	assert.Same(t, agilite, combat.Governing)

	hobby, ok := c.Profile.SecondarySkills.Get("Hobby")
	require.True(t, ok)
	assert.True(t, hobby.Multiple)
	assert.True(t, hobby.Acquired)
}

func TestNew_EmptyNameFails(t *testing.T) {
	_, err := character.New("", profile.NatureDemon, 0, catalogue.Default())
	require.Error(t, err)
}

func TestNew_NilCatalogueFails(t *testing.T) {
	_, err := character.New("Asmodee", profile.NatureDemon, 0, nil)
	require.Error(t, err)
}

func TestNew_InvalidCatalogueFails(t *testing.T) {
	cat := catalogue.Default()
	cat.Primary = append(cat.Primary, catalogue.SkillSpec{Key: "Danse", Governing: "Charisme"})
	_, err := character.New("Asmodee", profile.NatureDemon, 0, cat)
	require.Error(t, err)
}

func TestRecompute_SkillBaseRanks(t *testing.T) {
	c := newTestCharacter(t, profile.NatureDemon)
	agilite, _ := c.Profile.Attributes.Get(catalogue.AttrAgilite)
	agilite.IncreaseRank(3) // full rank 7

	c.Recompute()

	combat, _ := c.Profile.PrimarySkills.Get("Combat")
	assert.Equal(t, 3, combat.BaseRank)
	assert.Equal(t, 3, combat.Specialization.BaseRank)

	hobby, _ := c.Profile.SecondarySkills.Get("Hobby")
	assert.Equal(t, 2, hobby.BaseRank, "ungoverned skills keep the flat default")
}

func TestRecompute_SideValues(t *testing.T) {
	c := newTestCharacter(t, profile.NatureDemon)
	// All attributes at full rank 4: real rank 2.0 each.
	c.Recompute()

	pf, _ := c.Profile.Values.Get(catalogue.SidePF)
	assert.Equal(t, 4, pf.BaseRank, "PF = floor(Force + Volonte)")
	pp, _ := c.Profile.Values.Get(catalogue.SidePP)
	assert.Equal(t, 4, pp.BaseRank, "PP = floor(Foi + Volonte)")
}

// Demon with Force real rank 3: wound = 5, thresholds 5/10/15/20.
func TestRecompute_DemonWoundThresholds(t *testing.T) {
	c := newTestCharacter(t, profile.NatureDemon)
	force, _ := c.Profile.Attributes.Get(catalogue.AttrForce)
	force.IncreaseRank(2) // full rank 6, real rank 3.0

	c.Recompute()

	for key, want := range map[string]int{"BL": 5, "BG": 10, "BF": 15, "MS": 20} {
		v, _ := c.Profile.Values.Get(key)
		assert.Equal(t, want, v.BaseRank, key)
	}
}

func TestRecompute_AngelWoundThresholds(t *testing.T) {
	c := newTestCharacter(t, profile.NatureAngel)
	// Force real rank 2.0, angel bonus 3: wound = 5.
	c.Recompute()

	bl, _ := c.Profile.Values.Get(catalogue.SideBL)
	assert.Equal(t, 5, bl.BaseRank)
	ms, _ := c.Profile.Values.Get(catalogue.SideMS)
	assert.Equal(t, 20, ms.BaseRank)
}

func TestRecompute_HalfPointFloors(t *testing.T) {
	c := newTestCharacter(t, profile.NatureDemon)
	force, _ := c.Profile.Attributes.Get(catalogue.AttrForce)
	force.IncrementRank() // full rank 5, real rank 2.5

	c.Recompute()

	// wound = 2.5 + 2 = 4.5
	bl, _ := c.Profile.Values.Get(catalogue.SideBL)
	assert.Equal(t, 4, bl.BaseRank)
	bg, _ := c.Profile.Values.Get(catalogue.SideBG)
	assert.Equal(t, 9, bg.BaseRank)

	pf, _ := c.Profile.Values.Get(catalogue.SidePF)
	assert.Equal(t, 4, pf.BaseRank, "PF = floor(2.5 + 2.0)")
}

func TestRecompute_Idempotent(t *testing.T) {
	c := newTestCharacter(t, profile.NatureDemon)
	c.Recompute()
	first, err := c.Snapshot()
	require.NoError(t, err)

	c.Recompute()
	second, err := c.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestSnapshot_RoundTripPreservesGraph(t *testing.T) {
	c := newTestCharacter(t, profile.NatureDemon)
	combat, _ := c.Profile.PrimarySkills.Get("Combat")
	combat.Specialization.IncrementRank()
	combat.IncrementRank()
	hobby, _ := c.Profile.SecondarySkills.Get("Hobby")
	hobby.AddVariety("Peche")
	c.Recompute()

	data, err := c.Snapshot()
	require.NoError(t, err)

	out, err := character.FromSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, c.Name, out.Name)
	assert.Equal(t, c.Profile.Nature, out.Profile.Nature)

	outCombat, _ := out.Profile.PrimarySkills.Get("Combat")
	require.NotNil(t, outCombat.Specialization)
	assert.Same(t, outCombat, outCombat.Specialization.Master)
	assert.Equal(t, 1, outCombat.Rank)
	assert.Equal(t, 1, outCombat.Specialization.Rank)

	attr, _ := out.Profile.Attributes.Get(catalogue.AttrAgilite)
	assert.Same(t, attr, outCombat.Governing, "governing pointer resolved against own maps")

	outHobby, _ := out.Profile.SecondarySkills.Get("Hobby")
	assert.Equal(t, []string{"Peche"}, outHobby.Varieties)

	// Derivation rules keep working on the reloaded graph.
	attr.IncreaseRank(4)
	out.Recompute()
	assert.Equal(t, 4, outCombat.BaseRank)
}

func TestFromSnapshot_Garbage(t *testing.T) {
	_, err := character.FromSnapshot([]byte("not json"))
	require.Error(t, err)

	_, err = character.FromSnapshot([]byte(`{"name":"x"}`))
	require.Error(t, err, "snapshot without profile")
}
