package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-thienco/internal/engine"
)

// -----------------------------------------------------------------------------
// Five Elements
// -----------------------------------------------------------------------------

func TestRelate_Reflexive(t *testing.T) {
	for _, e := range engine.Elements() {
		assert.Equal(t, engine.RelSame, engine.Relate(e, e), e.English())
	}
}

// TestRelate_Complete asserts that the two cycles classify every ordered pair of
// distinct elements, so the neutral fallback is unreachable for valid input.
func TestRelate_Complete(t *testing.T) {
	for _, a := range engine.Elements() {
		for _, b := range engine.Elements() {
			if a == b {
				continue
			}
			rel := engine.Relate(a, b)
			assert.NotEqual(t, engine.RelNeutral, rel, "%s -> %s left unclassified", a.English(), b.English())
			assert.Equal(t, rel.Inverse(), engine.Relate(b, a), "%s/%s not inverse-consistent", a.English(), b.English())
		}
	}
}

func TestRelate_Cycles(t *testing.T) {
	tests := []struct {
		a, b engine.Element
		want engine.Relationship
	}{
		{engine.Wood, engine.Fire, engine.RelGenerates},
		{engine.Fire, engine.Wood, engine.RelGeneratedBy},
		{engine.Earth, engine.Metal, engine.RelGenerates},
		{engine.Water, engine.Metal, engine.RelGeneratedBy},
		{engine.Metal, engine.Wood, engine.RelControls},
		{engine.Fire, engine.Metal, engine.RelControls},
		{engine.Water, engine.Earth, engine.RelControlledBy},
		{engine.Wood, engine.Earth, engine.RelControls},
	}
	for _, tt := range tests {
		t.Run(tt.a.English()+"-"+tt.b.English(), func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Relate(tt.a, tt.b))
		})
	}
}

func TestElement_EachNodeHasOneSourceAndTarget(t *testing.T) {
	generatedBy := map[engine.Element]int{}
	controlledBy := map[engine.Element]int{}
	for _, e := range engine.Elements() {
		generatedBy[e.Generates()]++
		controlledBy[e.Controls()]++
		assert.Equal(t, e, e.GeneratedBy().Generates())
	}
	for _, e := range engine.Elements() {
		assert.Equal(t, 1, generatedBy[e], "%s generated by exactly one element", e.English())
		assert.Equal(t, 1, controlledBy[e], "%s controlled by exactly one element", e.English())
	}
}

func TestRelate_InvalidElement(t *testing.T) {
	assert.Equal(t, engine.RelNeutral, engine.Relate(engine.Element(9), engine.Wood))
}

// -----------------------------------------------------------------------------
// Branch relationships
// -----------------------------------------------------------------------------

func TestBranches_SymmetricAndExclusive(t *testing.T) {
	clashes, harmonies := 0, 0
	for _, a := range engine.Branches() {
		assert.False(t, engine.Clashes(a, a), "%s clashes with itself", a)
		assert.False(t, engine.Harmonizes(a, a), "%s harmonizes with itself", a)
		assert.False(t, engine.TripleHarmony(a, a))

		for _, b := range engine.Branches() {
			assert.Equal(t, engine.Clashes(a, b), engine.Clashes(b, a))
			assert.Equal(t, engine.Harmonizes(a, b), engine.Harmonizes(b, a))
			assert.Equal(t, engine.TripleHarmony(a, b), engine.TripleHarmony(b, a))
			assert.False(t, engine.Clashes(a, b) && engine.Harmonizes(a, b), "%s/%s both clash and harmony", a, b)
			if engine.Clashes(a, b) {
				clashes++
			}
			if engine.Harmonizes(a, b) {
				harmonies++
			}
		}
	}
	// Six unordered pairs each, counted in both directions.
	assert.Equal(t, 12, clashes)
	assert.Equal(t, 12, harmonies)
}

func TestBranches_KnownPairs(t *testing.T) {
	assert.True(t, engine.Clashes(engine.Ti, engine.Hoi))
	assert.True(t, engine.Clashes(engine.Ty, engine.Ngo))
	assert.True(t, engine.Harmonizes(engine.Ti, engine.Than))
	assert.True(t, engine.Harmonizes(engine.Mao, engine.Tuat))
	assert.True(t, engine.TripleHarmony(engine.Ti, engine.Dau))
	assert.False(t, engine.Clashes(engine.Ti, engine.Than))
	assert.False(t, engine.Harmonizes(engine.Ty, engine.Ngo))
}

func TestBranches_ClashIsOpposition(t *testing.T) {
	for _, b := range engine.Branches() {
		opposite := engine.Branch((int(b) + 6) % 12)
		assert.True(t, engine.Clashes(b, opposite), "%s should clash with %s", b, opposite)
	}
}

// -----------------------------------------------------------------------------
// Duty gods
// -----------------------------------------------------------------------------

func TestDutyGods_Partition(t *testing.T) {
	auspicious, inauspicious := 0, 0
	for _, d := range engine.DutyGods() {
		assert.NotEqual(t, d.Auspicious(), d.Inauspicious(), "%s must be in exactly one set", d)
		if d.Auspicious() {
			auspicious++
		} else {
			inauspicious++
		}
	}
	assert.Equal(t, 6, auspicious)
	assert.Equal(t, 6, inauspicious)

	for _, d := range []engine.DutyGod{engine.Kien, engine.Tru, engine.Man, engine.BinhTruc, engine.DinhTruc, engine.Thanh} {
		assert.True(t, d.Auspicious(), d.String())
	}
}

func TestResolveDutyGod(t *testing.T) {
	tests := []struct {
		month, branch int
		want          engine.DutyGod
	}{
		{1, 0, engine.Man},    // (1+0+1) % 12 = 2
		{11, 8, engine.Thanh}, // 20 % 12 = 8
		{11, 11, engine.Be},   // 23 % 12 = 11
		{12, 11, engine.Kien}, // 24 % 12 = 0
		{9, 0, engine.Khai},   // 10
		{6, 5, engine.Kien},   // 12 % 12 = 0
	}
	for _, tt := range tests {
		got, err := engine.ResolveDutyGod(tt.month, tt.branch)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "month %d branch %d", tt.month, tt.branch)
	}
}

func TestResolveDutyGod_RejectsOutOfRange(t *testing.T) {
	_, err := engine.ResolveDutyGod(0, 3)
	assert.ErrorIs(t, err, engine.ErrLunarMonthRange)
	_, err = engine.ResolveDutyGod(13, 3)
	assert.ErrorIs(t, err, engine.ErrLunarMonthRange)
	_, err = engine.ResolveDutyGod(5, -1)
	assert.ErrorIs(t, err, engine.ErrBranchIndexRange)
	_, err = engine.ResolveDutyGod(5, 12)
	assert.ErrorIs(t, err, engine.ErrBranchIndexRange)
}

// -----------------------------------------------------------------------------
// Seasons & vitality
// -----------------------------------------------------------------------------

func TestSeasonOf(t *testing.T) {
	want := []engine.Season{
		engine.Spring, engine.Spring, engine.Spring,
		engine.Summer, engine.Summer, engine.Summer,
		engine.Autumn, engine.Autumn, engine.Autumn,
		engine.Winter, engine.Winter, engine.Winter,
	}
	for month := 1; month <= 12; month++ {
		got, err := engine.SeasonOf(month)
		require.NoError(t, err)
		assert.Equal(t, want[month-1], got, "month %d", month)
	}

	_, err := engine.SeasonOf(0)
	assert.ErrorIs(t, err, engine.ErrLunarMonthRange)
	_, err = engine.SeasonOf(13)
	assert.ErrorIs(t, err, engine.ErrLunarMonthRange)
}

// TestStateOf_Total checks that all 20 combinations are defined and that each
// season assigns the five states exactly once.
func TestStateOf_Total(t *testing.T) {
	for _, s := range engine.Seasons() {
		seen := map[engine.VitalityState]bool{}
		for _, e := range engine.Elements() {
			state, err := engine.StateOf(s, e)
			require.NoError(t, err, "%s/%s", s, e)
			assert.True(t, state.Valid())
			assert.False(t, seen[state], "%s repeats %s", s, state)
			seen[state] = true
		}
		assert.Len(t, seen, 5)
	}
}

func TestStateOf_Known(t *testing.T) {
	tests := []struct {
		season  engine.Season
		element engine.Element
		want    engine.VitalityState
	}{
		{engine.Spring, engine.Wood, engine.Prosperous},
		{engine.Spring, engine.Earth, engine.Dead},
		{engine.Summer, engine.Earth, engine.Growing},
		{engine.Autumn, engine.Metal, engine.Prosperous},
		{engine.Autumn, engine.Fire, engine.Imprisoned},
		{engine.Winter, engine.Metal, engine.Resting},
	}
	for _, tt := range tests {
		got, err := engine.StateOf(tt.season, tt.element)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s/%s", tt.season, tt.element)
	}
}

func TestStateOf_InvalidInput(t *testing.T) {
	_, err := engine.StateOf(engine.Season(7), engine.Wood)
	assert.ErrorIs(t, err, engine.ErrVitalityTable)
	_, err = engine.StateOf(engine.Spring, engine.Element(-1))
	assert.ErrorIs(t, err, engine.ErrVitalityTable)
}

func TestVitality_Modifiers(t *testing.T) {
	assert.Equal(t, 2, engine.Prosperous.Modifier())
	assert.Equal(t, 1, engine.Growing.Modifier())
	assert.Equal(t, 0, engine.Resting.Modifier())
	assert.Equal(t, -1, engine.Imprisoned.Modifier())
	assert.Equal(t, -2, engine.Dead.Modifier())
	assert.Equal(t, "Vượng", engine.Prosperous.String())
}
