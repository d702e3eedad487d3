package character

import (
	"fmt"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
)

// Slot identifies a named equipment slot on a sheet.
type Slot string

const (
	// SlotWeaponRight is the right-hand (primary) weapon slot.
	SlotWeaponRight Slot = "weapon_right"
	// SlotWeaponLeft is the left-hand weapon slot.
	SlotWeaponLeft Slot = "weapon_left"
	// SlotArmor is the body armor slot.
	SlotArmor Slot = "armor"
	// SlotShield is the shield slot.
	SlotShield Slot = "shield"
)

// EquippedSet holds the catalog ids occupying each equipment slot; 0 means
// empty.
//
// Invariant: a two-handed weapon occupies both weapon slots (TwoHanded set,
// WeaponLeft == WeaponRight) and excludes a shield. A shield excludes a
// two-handed weapon and the left-hand slot is free for one-handers only.
// The two can never be occupied simultaneously.
type EquippedSet struct {
	WeaponRight int `json:"weaponRight,omitempty"`
	WeaponLeft  int `json:"weaponLeft,omitempty"`
	Armor       int `json:"armor,omitempty"`
	Shield      int `json:"shield,omitempty"`
	// TwoHanded records that the right-hand weapon occupies both hands.
	TwoHanded bool `json:"twoHanded,omitempty"`
}

// twoHanded reports whether a weapon entry needs both hands.
func twoHanded(e *catalog.Entry) bool {
	return e.Int("hands") >= 2
}

// EquipWeapon places the weapon entry in the right or left hand.
//
// A two-handed weapon takes both hands and clears any equipped shield; it
// can only go in the right slot. Equipping a one-hander over a two-hander
// frees the other hand first.
//
// Precondition: e must be a non-nil "weapon" entry.
func (s *State) EquipWeapon(e *catalog.Entry, slot Slot) error {
	if e == nil {
		return fmt.Errorf("character: weapon entry must not be nil")
	}
	if e.Category != "weapon" {
		return fmt.Errorf("character: entry %q is %s, not a weapon", e.Name, e.Category)
	}
	switch slot {
	case SlotWeaponRight:
	case SlotWeaponLeft:
		if twoHanded(e) {
			return fmt.Errorf("character: two-handed weapon %q cannot go in the left hand", e.Name)
		}
	default:
		return fmt.Errorf("character: %q is not a weapon slot", slot)
	}

	if twoHanded(e) {
		s.Equipment.WeaponRight = e.ID
		s.Equipment.WeaponLeft = e.ID
		s.Equipment.TwoHanded = true
		s.Equipment.Shield = 0
		return nil
	}

	if s.Equipment.TwoHanded {
		// Replacing a two-hander with a one-hander frees both hands.
		s.Equipment.WeaponRight = 0
		s.Equipment.WeaponLeft = 0
		s.Equipment.TwoHanded = false
	}
	if slot == SlotWeaponRight {
		s.Equipment.WeaponRight = e.ID
	} else {
		s.Equipment.WeaponLeft = e.ID
	}
	return nil
}

// EquipShield places the shield entry in the shield slot, clearing a
// two-handed weapon (both hands) when one is equipped.
//
// Precondition: e must be a non-nil "shield" entry.
func (s *State) EquipShield(e *catalog.Entry) error {
	if e == nil {
		return fmt.Errorf("character: shield entry must not be nil")
	}
	if e.Category != "shield" {
		return fmt.Errorf("character: entry %q is %s, not a shield", e.Name, e.Category)
	}
	if s.Equipment.TwoHanded {
		s.Equipment.WeaponRight = 0
		s.Equipment.WeaponLeft = 0
		s.Equipment.TwoHanded = false
	}
	s.Equipment.Shield = e.ID
	return nil
}

// EquipArmor places the armor entry in the armor slot.
//
// Precondition: e must be a non-nil "armor" entry.
func (s *State) EquipArmor(e *catalog.Entry) error {
	if e == nil {
		return fmt.Errorf("character: armor entry must not be nil")
	}
	if e.Category != "armor" {
		return fmt.Errorf("character: entry %q is %s, not armor", e.Name, e.Category)
	}
	s.Equipment.Armor = e.ID
	return nil
}

// Unequip clears the given slot. Clearing either hand of a two-handed
// weapon clears both.
func (s *State) Unequip(slot Slot) error {
	switch slot {
	case SlotWeaponRight, SlotWeaponLeft:
		if s.Equipment.TwoHanded {
			s.Equipment.WeaponRight = 0
			s.Equipment.WeaponLeft = 0
			s.Equipment.TwoHanded = false
			return nil
		}
		if slot == SlotWeaponRight {
			s.Equipment.WeaponRight = 0
		} else {
			s.Equipment.WeaponLeft = 0
		}
	case SlotArmor:
		s.Equipment.Armor = 0
	case SlotShield:
		s.Equipment.Shield = 0
	default:
		return fmt.Errorf("character: unknown slot %q", slot)
	}
	return nil
}
