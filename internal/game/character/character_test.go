package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/encore-rpg/sheetsmith/internal/game/character"
)

func TestNewStateDefaults(t *testing.T) {
	s := character.NewState()
	require.NotNil(t, s)
	assert.Equal(t, character.SheetVersion, s.Version)
	assert.Equal(t, character.MethodPoint, s.Abilities.Method)
	for _, ab := range character.Abilities {
		assert.Equal(t, character.DefaultScore, s.Abilities.Score(ab), "ability %s", ab)
	}
	assert.Empty(t, s.Skills)
	assert.Zero(t, s.Equipment.WeaponRight)
	assert.Zero(t, s.Money)
	assert.False(t, s.MoneySet)
}

func TestAbilityScoreAccessors(t *testing.T) {
	a := character.DefaultAbilities()
	a.SetScore(character.AbilityPSY, 14)
	assert.Equal(t, 14, a.Score(character.AbilityPSY))
	assert.Equal(t, 4, a.Modifier(a.Psy))
	assert.Equal(t, -2, a.Modifier(8))
	assert.Equal(t, 74, a.Sum())

	// Unknown names are ignored on write and read as zero.
	a.SetScore(character.Ability("luck"), 99)
	assert.Zero(t, a.Score(character.Ability("luck")))
}

func TestCloneIsIndependent(t *testing.T) {
	s := character.NewState()
	require.NoError(t, s.AddCustomSkill("Juggling", 10))
	require.NoError(t, s.AddInventory("item", 1, 3))
	s.ClaimReward("item:1@5")
	require.NoError(t, s.SetBonusTargets(character.BonusInt, []int{0}))

	c := s.Clone()
	require.NoError(t, c.AddCustomSkill("Whittling", 5))
	c.Inventory[0].Qty = 99
	c.UnclaimReward("item:1@5")
	c.Bonuses.Int.Targets[0] = 0
	require.NoError(t, c.SetBonusTargets(character.BonusInt, nil))

	assert.Len(t, s.Skills, 1)
	assert.Equal(t, 3, s.InventoryQty("item", 1))
	assert.True(t, s.RewardClaimed("item:1@5"))
	assert.Equal(t, []int{0}, s.Bonuses.Int.Targets)
}

func TestClonePropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := character.NewState()
		for _, ab := range character.Abilities {
			s.Abilities.SetScore(ab, rapid.IntRange(character.MinScore, character.MaxScore).Draw(t, string(ab)))
		}
		rows := rapid.IntRange(0, 8).Draw(t, "rows")
		for i := 0; i < rows; i++ {
			require.NoError(t, s.AddMasterSkill(i+1, 5*rapid.IntRange(1, 4).Draw(t, "level")))
		}

		c := s.Clone()
		require.Equal(t, s.Abilities, c.Abilities)
		require.Equal(t, s.Skills, c.Skills)

		// Mutating the clone's rows never reaches the original.
		for i := range c.Skills {
			c.Skills[i].BaseLevel = 0
		}
		for i, row := range s.Skills {
			require.NotZero(t, row.BaseLevel, "row %d", i)
		}
	})
}

func TestMoney(t *testing.T) {
	s := character.NewState()
	assert.True(t, s.SetMoney(12000))
	assert.True(t, s.MoneySet)
	assert.Equal(t, 12000, s.Money)

	assert.True(t, s.Spend(2000))
	assert.Equal(t, 10000, s.Money)
	assert.False(t, s.Spend(10001), "insufficient funds leave the balance alone")
	assert.False(t, s.Spend(-1))
	assert.Equal(t, 10000, s.Money)

	s.Earn(500)
	s.Earn(-500)
	assert.Equal(t, 10500, s.Money)

	assert.False(t, s.SetMoney(12000), "the grant runs once")
	assert.Equal(t, 10500, s.Money, "a re-run must not restore starting funds")
}

func TestRewardClaims(t *testing.T) {
	s := character.NewState()
	assert.False(t, s.RewardClaimed("weapon:5@5"))
	s.ClaimReward("weapon:5@5")
	assert.True(t, s.RewardClaimed("weapon:5@5"))
	s.UnclaimReward("weapon:5@5")
	s.UnclaimReward("weapon:5@5")
	assert.False(t, s.RewardClaimed("weapon:5@5"))
}

// scriptedSource replays a fixed sequence of raw die values.
type scriptedSource struct {
	values []int
	i      int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[s.i%len(s.values)] % n
	s.i++
	return v
}

func TestRollAbilities(t *testing.T) {
	s := character.NewState()
	src := &scriptedSource{values: []int{0, 9, 4, 4, 2, 7, 1, 1, 9, 9, 0, 0}}
	s.RollAbilities(src)

	assert.Equal(t, character.MethodRoll, s.Abilities.Method)
	assert.Equal(t, 11, s.Abilities.Str)
	assert.Equal(t, 10, s.Abilities.Dex)
	assert.Equal(t, 11, s.Abilities.Agi)
	assert.Equal(t, 4, s.Abilities.Vit)
	assert.Equal(t, 20, s.Abilities.Int)
	assert.Equal(t, 2, s.Abilities.Psy)
}

func TestRollAbilitiesBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := &scriptedSource{values: rapid.SliceOfN(rapid.IntRange(0, 9), 12, 12).Draw(t, "dice")}
		s := character.NewState()
		s.RollAbilities(src)
		for _, ab := range character.Abilities {
			score := s.Abilities.Score(ab)
			require.GreaterOrEqual(t, score, character.MinScore)
			require.LessOrEqual(t, score, character.MaxScore)
		}
	})
}

func TestCryptoSourceRange(t *testing.T) {
	src := character.NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := src.Intn(10)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 10)
	}
}
