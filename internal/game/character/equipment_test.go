package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
)

func weaponEntry(id int, name string, hands int) *catalog.Entry {
	return &catalog.Entry{
		Category: "weapon",
		ID:       id,
		Name:     name,
		Fields:   map[string]any{"hands": hands},
	}
}

func TestEquipOneHandedWeapons(t *testing.T) {
	s := character.NewState()
	sword := weaponEntry(1, "Longsword", 1)
	dagger := weaponEntry(3, "Dagger", 1)

	require.NoError(t, s.EquipWeapon(sword, character.SlotWeaponRight))
	require.NoError(t, s.EquipWeapon(dagger, character.SlotWeaponLeft))
	assert.Equal(t, 1, s.Equipment.WeaponRight)
	assert.Equal(t, 3, s.Equipment.WeaponLeft)
	assert.False(t, s.Equipment.TwoHanded)
}

func TestEquipTwoHandedWeapon(t *testing.T) {
	s := character.NewState()
	shield := &catalog.Entry{Category: "shield", ID: 1, Name: "Buckler", Fields: map[string]any{}}
	require.NoError(t, s.EquipShield(shield))

	great := weaponEntry(2, "Greatsword", 2)
	require.Error(t, s.EquipWeapon(great, character.SlotWeaponLeft), "two-handers only fit the right slot")
	require.NoError(t, s.EquipWeapon(great, character.SlotWeaponRight))

	assert.Equal(t, 2, s.Equipment.WeaponRight)
	assert.Equal(t, 2, s.Equipment.WeaponLeft)
	assert.True(t, s.Equipment.TwoHanded)
	assert.Zero(t, s.Equipment.Shield, "shield cleared by a two-hander")
}

func TestShieldClearsTwoHandedWeapon(t *testing.T) {
	s := character.NewState()
	require.NoError(t, s.EquipWeapon(weaponEntry(2, "Greatsword", 2), character.SlotWeaponRight))

	shield := &catalog.Entry{Category: "shield", ID: 1, Name: "Buckler", Fields: map[string]any{}}
	require.NoError(t, s.EquipShield(shield))
	assert.Equal(t, 1, s.Equipment.Shield)
	assert.Zero(t, s.Equipment.WeaponRight)
	assert.Zero(t, s.Equipment.WeaponLeft)
	assert.False(t, s.Equipment.TwoHanded)
}

func TestOneHanderReplacesTwoHander(t *testing.T) {
	s := character.NewState()
	require.NoError(t, s.EquipWeapon(weaponEntry(2, "Greatsword", 2), character.SlotWeaponRight))
	require.NoError(t, s.EquipWeapon(weaponEntry(1, "Longsword", 1), character.SlotWeaponLeft))

	assert.Zero(t, s.Equipment.WeaponRight, "the freed right hand stays empty")
	assert.Equal(t, 1, s.Equipment.WeaponLeft)
	assert.False(t, s.Equipment.TwoHanded)
}

func TestUnequip(t *testing.T) {
	s := character.NewState()
	require.NoError(t, s.EquipWeapon(weaponEntry(2, "Greatsword", 2), character.SlotWeaponRight))
	require.NoError(t, s.Unequip(character.SlotWeaponLeft))
	assert.Zero(t, s.Equipment.WeaponRight, "either hand of a two-hander clears both")
	assert.Zero(t, s.Equipment.WeaponLeft)

	armor := &catalog.Entry{Category: "armor", ID: 1, Name: "Leather Vest", Fields: map[string]any{}}
	require.NoError(t, s.EquipArmor(armor))
	require.NoError(t, s.Unequip(character.SlotArmor))
	assert.Zero(t, s.Equipment.Armor)

	require.Error(t, s.Unequip(character.Slot("hat")))
}

func TestEquipCategoryMismatch(t *testing.T) {
	s := character.NewState()
	item := &catalog.Entry{Category: "item", ID: 1, Name: "Tonic", Fields: map[string]any{}}
	require.Error(t, s.EquipWeapon(item, character.SlotWeaponRight))
	require.Error(t, s.EquipShield(item))
	require.Error(t, s.EquipArmor(item))
	require.Error(t, s.EquipWeapon(nil, character.SlotWeaponRight))
	require.Error(t, s.EquipWeapon(weaponEntry(1, "Longsword", 1), character.SlotArmor))
}
