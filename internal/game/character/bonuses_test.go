package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encore-rpg/sheetsmith/internal/game/character"
)

func bonusFixture(t *testing.T) *character.State {
	t.Helper()
	s := character.NewState()
	s.Abilities.Int = 13 // +3
	s.Abilities.Dex = 8  // -2, no dex bonus
	for _, name := range []string{"Lore", "Alchemy", "Archery"} {
		require.NoError(t, s.AddCustomSkill(name, 10))
	}
	return s
}

func TestSetBonusTargets(t *testing.T) {
	s := bonusFixture(t)
	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{0, 2}))
	assert.Equal(t, []int{0, 2}, s.Bonuses.Int.Targets)

	require.Error(t, s.SetBonusTargets(character.BonusInt, []int{0, 3}), "out-of-range index")
	require.Error(t, s.SetBonusTargets(character.BonusKind("psy"), nil), "unknown kind")

	require.NoError(t, s.ConfirmBonus(character.BonusInt))
	require.Error(t, s.SetBonusTargets(character.BonusInt, []int{1}), "confirmed track rejects retargeting")
}

func TestConfirmBonusAppliesModifier(t *testing.T) {
	s := bonusFixture(t)
	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{0, 1}))
	require.NoError(t, s.ConfirmBonus(character.BonusInt))

	assert.True(t, s.Bonuses.Int.Confirmed)
	assert.Equal(t, 13, s.Skills[0].Level)
	assert.Equal(t, 13, s.Skills[1].Level)
	assert.Equal(t, 10, s.Skills[2].Level, "untargeted row untouched")
	assert.Equal(t, 10, s.Skills[0].BaseLevel, "base level never changes")

	require.Error(t, s.ConfirmBonus(character.BonusInt), "double confirmation")
}

func TestConfirmBonusNegativeModifierAddsNothing(t *testing.T) {
	s := bonusFixture(t)
	require.NoError(t, s.SetBonusTargets(character.BonusDex, []int{2}))
	require.NoError(t, s.ConfirmBonus(character.BonusDex))
	assert.Equal(t, 10, s.Skills[2].Level)
}

func TestEditBonusRevertsLevelsKeepsTargets(t *testing.T) {
	s := bonusFixture(t)
	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{0, 1}))
	require.NoError(t, s.ConfirmBonus(character.BonusInt))
	require.NoError(t, s.EditBonus(character.BonusInt))

	assert.False(t, s.Bonuses.Int.Confirmed)
	assert.Equal(t, []int{0, 1}, s.Bonuses.Int.Targets, "targets survive for adjustment")
	assert.Equal(t, 10, s.Skills[0].Level)
	assert.Equal(t, 10, s.Skills[1].Level)

	// Draft tracks can be edited again without effect.
	require.NoError(t, s.EditBonus(character.BonusInt))
	require.Error(t, s.EditBonus(character.BonusKind("psy")))
}

func TestBonusConfirmEditCycle(t *testing.T) {
	s := bonusFixture(t)
	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{0, 1}))
	require.NoError(t, s.ConfirmBonus(character.BonusInt))
	require.NoError(t, s.EditBonus(character.BonusInt))
	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{1, 2}))
	require.NoError(t, s.ConfirmBonus(character.BonusInt))

	assert.Equal(t, 10, s.Skills[0].Level)
	assert.Equal(t, 13, s.Skills[1].Level)
	assert.Equal(t, 13, s.Skills[2].Level)
}
