package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encore-rpg/sheetsmith/internal/game/character"
)

// creationSheet builds a sheet that passes every creation-mode rule: eight
// rows of base 10 (total 80), point total 70, and no positive bonus
// modifiers to target.
func creationSheet(t *testing.T) *character.State {
	t.Helper()
	s := character.NewState()
	s.Abilities = character.AbilityScores{
		Str: 12, Dex: 10, Agi: 10, Vit: 10, Int: 10, Psy: 18,
		Method: character.MethodPoint,
	}
	for i := 0; i < character.CreationSkillRows; i++ {
		require.NoError(t, s.AddMasterSkill(i+1, 10))
	}
	return s
}

func codes(issues []character.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Code
	}
	return out
}

func TestValidateCleanSheet(t *testing.T) {
	s := creationSheet(t)
	assert.Empty(t, character.Validate(s, true))
	assert.Empty(t, character.Validate(s, false))
}

func TestValidateAbilityRange(t *testing.T) {
	s := creationSheet(t)
	s.Abilities.Str = 1
	s.Abilities.Psy = 29 // sum still 70
	issues := character.Validate(s, false)
	assert.Equal(t, []string{character.IssueAbilityRange, character.IssueAbilityRange}, codes(issues))
}

func TestValidatePointSum(t *testing.T) {
	s := creationSheet(t)
	s.Abilities.Vit = 12
	issues := character.Validate(s, true)
	require.Len(t, issues, 1)
	assert.Equal(t, character.IssuePointSum, issues[0].Code)

	// Rolled scores are exempt from the budget.
	s.Abilities.Method = character.MethodRoll
	assert.Empty(t, character.Validate(s, true))
	// So is play mode.
	s.Abilities.Method = character.MethodPoint
	assert.Empty(t, character.Validate(s, false))
}

func TestValidateSkillRowCount(t *testing.T) {
	s := creationSheet(t)
	require.NoError(t, s.RemoveSkill(7))
	issues := character.Validate(s, true)
	require.Len(t, issues, 1)
	assert.Equal(t, character.IssueSkillRowCount, issues[0].Code)

	assert.Empty(t, character.Validate(s, false), "row count only binds creation")
}

func TestValidateSkillLevels(t *testing.T) {
	s := creationSheet(t)
	require.NoError(t, s.SetSkillBaseLevel(0, 12))
	require.NoError(t, s.SetSkillBaseLevel(1, 7))
	require.NoError(t, s.SetSkillBaseLevel(2, 0))
	got := codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueSkillLevel)
	assert.Len(t, got, 3)

	assert.Empty(t, character.Validate(s, false))
}

func TestValidateSkillTotal(t *testing.T) {
	s := creationSheet(t)
	require.NoError(t, s.SetSkillBaseLevel(0, 20))
	issues := character.Validate(s, true)
	require.Len(t, issues, 1)
	assert.Equal(t, character.IssueSkillTotal, issues[0].Code)
}

func TestValidateDuplicateMasterSkill(t *testing.T) {
	s := creationSheet(t)
	// AddMasterSkill refuses duplicates, so force one in directly: imports
	// and share codes can carry them.
	s.Skills[7].RefID = s.Skills[0].RefID
	got := codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueDuplicateSkill)
}

func TestValidateCustomNames(t *testing.T) {
	s := creationSheet(t)
	require.NoError(t, s.RemoveSkill(7))
	require.NoError(t, s.RemoveSkill(6))
	require.NoError(t, s.AddCustomSkill("Falconry", 10))
	require.NoError(t, s.AddCustomSkill("FALCONRY", 10))
	got := codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueCustomName, "names compare case-insensitively")

	s.Skills[7].Name = "   "
	got = codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueCustomName)
}

func TestValidateBonusTargetCounts(t *testing.T) {
	s := creationSheet(t)
	s.Abilities.Int = 13
	s.Abilities.Psy = 15 // keep the point total at 70

	// Positive int modifier with no targets.
	got := codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueBonusTargetCount)

	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{0, 1}))
	assert.Empty(t, character.Validate(s, true))

	// Non-positive dex modifier must have zero targets.
	require.NoError(t, s.SetBonusTargets(character.BonusDex, []int{2, 3}))
	got = codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueBonusTargetCount)
}

func TestValidateBonusTargetOverlap(t *testing.T) {
	s := creationSheet(t)
	s.Abilities.Int = 13
	s.Abilities.Dex = 13
	s.Abilities.Psy = 12 // point total 70

	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{0, 1}))
	require.NoError(t, s.SetBonusTargets(character.BonusDex, []int{1, 2}))
	got := codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueBonusTargetOverlap)

	require.NoError(t, s.SetBonusTargets(character.BonusDex, []int{2, 3}))
	assert.Empty(t, character.Validate(s, true))

	// A repeated index inside one track is also flagged.
	require.NoError(t, s.SetBonusTargets(character.BonusDex, []int{2, 2}))
	got = codes(character.Validate(s, true))
	assert.Contains(t, got, character.IssueBonusTargetOverlap)
}
