package power_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/scox/internal/game/dice"
	"github.com/cory-johannsen/scox/internal/game/power"
	"github.com/cory-johannsen/scox/internal/game/value"
)

// fakeRecipient records draw effects without a full profile.
type fakeRecipient struct {
	powers map[string]*value.Power
	pool   int
}

func newFakeRecipient() *fakeRecipient {
	return &fakeRecipient{powers: make(map[string]*value.Power)}
}

func (r *fakeRecipient) HasPower(name string) bool { _, ok := r.powers[name]; return ok }
func (r *fakeRecipient) AddPower(p *value.Power)   { r.powers[p.Name] = p }
func (r *fakeRecipient) AwardResource(pp int)      { r.pool += pp }

// fixedSource replays a scripted sequence of values.
type fixedSource struct {
	values []int
	i      int
}

func (s *fixedSource) Intn(n int) int {
	v := s.values[s.i%len(s.values)] % n
	s.i++
	return v
}

func testRows() []power.Row {
	return []power.Row{
		{Faces: []int{1, 2}, Powers: []power.Candidate{{Name: "Flammes", Rank: 2, Cost: "2 PP"}}, PP: 1},
		{Faces: []int{3}, Powers: []power.Candidate{
			{Name: "Aura de Peur", Flat: true, Cost: "1 PP"},
			{Name: "Griffes", Rank: 1, Cost: "-"},
		}, PP: 2, Bonus: map[string]int{"Baal": 4}},
	}
}

func TestGenerate_MapsEveryFace(t *testing.T) {
	tbl := power.Generate(testRows(), "", zap.NewNop())
	assert.Equal(t, []int{1, 2, 3}, tbl.Faces())

	pp, ok := tbl.Award(1)
	require.True(t, ok)
	assert.Equal(t, 1, pp)

	pp, ok = tbl.Award(3)
	require.True(t, ok)
	assert.Equal(t, 2, pp)

	_, ok = tbl.Award(6)
	assert.False(t, ok)
}

func TestGenerate_SuperiorBonusIsCaseNormalized(t *testing.T) {
	tbl := power.Generate(testRows(), "BAAL", zap.NewNop())
	pp, ok := tbl.Award(3)
	require.True(t, ok)
	assert.Equal(t, 4, pp, "Baal override replaces the base award")

	pp, _ = tbl.Award(1)
	assert.Equal(t, 1, pp, "rows without a matching bonus keep their base award")
}

func TestGenerate_LaterRowOverwritesFace(t *testing.T) {
	rows := []power.Row{
		{Faces: []int{1}, Powers: []power.Candidate{{Name: "A", Flat: true}}, PP: 1},
		{Faces: []int{1}, Powers: []power.Candidate{{Name: "B", Flat: true}}, PP: 5},
	}
	tbl := power.Generate(rows, "", zap.NewNop())
	pp, _ := tbl.Award(1)
	assert.Equal(t, 5, pp)
	require.Len(t, tbl.Candidates(1), 1)
	assert.Equal(t, "B", tbl.Candidates(1)[0].Name)
}

func TestDraw_CommitsPowersAndAward(t *testing.T) {
	tbl := power.Generate(testRows(), "", zap.NewNop())
	rec := newFakeRecipient()

	// Index 2 selects face 3 (keys are sorted: 1, 2, 3).
	n, err := tbl.Draw(rec, 1, &fixedSource{values: []int{2}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, rec.pool)

	require.True(t, rec.HasPower("Aura de Peur"))
	require.True(t, rec.HasPower("Griffes"))
	assert.True(t, rec.powers["Aura de Peur"].Invariant)
	assert.Equal(t, 2, rec.powers["Griffes"].BaseRank, "ranked power base is twice the table rank")
}

// A collision on the first sampled face ends the whole sequence: zero
// successes, pool unchanged, no new powers, no error.
func TestDraw_CollisionAbortsSequence(t *testing.T) {
	tbl := power.Generate(testRows(), "", zap.NewNop())
	rec := newFakeRecipient()
	rec.AddPower(value.NewFlatPower("Aura de Peur", "1 PP"))

	n, err := tbl.Draw(rec, 2, &fixedSource{values: []int{2}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, rec.pool)
	assert.Len(t, rec.powers, 1)
}

func TestDraw_CollisionKeepsEarlierSuccesses(t *testing.T) {
	tbl := power.Generate(testRows(), "", zap.NewNop())
	rec := newFakeRecipient()

	// First draw commits face 1 (Flammes); second samples face 1 again
	// and collides.
	n, err := tbl.Draw(rec, 2, &fixedSource{values: []int{0, 0}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, rec.pool)
	assert.True(t, rec.HasPower("Flammes"))
}

func TestDraw_UngeneratedTableIsFatal(t *testing.T) {
	var tbl *power.Table
	_, err := tbl.Draw(newFakeRecipient(), 1, dice.NewSeededSource(1))
	require.ErrorIs(t, err, power.ErrTableNotGenerated)

	empty := power.Generate(nil, "", zap.NewNop())
	_, err = empty.Draw(newFakeRecipient(), 1, dice.NewSeededSource(1))
	require.ErrorIs(t, err, power.ErrTableNotGenerated)
}

// Property: Draw never shrinks the pool and never inserts a power name
// that was already present, for any seed and prior ownership.
func TestDraw_PoolAndOwnershipProperties(t *testing.T) {
	rows := testRows()
	rapid.Check(t, func(rt *rapid.T) {
		tbl := power.Generate(rows, "", zap.NewNop())
		rec := newFakeRecipient()
		if rapid.Bool().Draw(rt, "preownFlammes") {
			rec.AddPower(value.NewRankedPower("Flammes", "2 PP", 2))
		}
		before := len(rec.powers)
		poolBefore := rec.pool

		src := dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		n, err := tbl.Draw(rec, rapid.IntRange(0, 5).Draw(rt, "n"), src)
		if err != nil {
			rt.Fatal(err)
		}
		if rec.pool < poolBefore {
			rt.Fatalf("pool decreased from %d to %d", poolBefore, rec.pool)
		}
		if n == 0 && len(rec.powers) != before {
			rt.Fatalf("powers changed with zero successes")
		}
	})
}
