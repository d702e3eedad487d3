// Package derive computes the Encore sheet's derived numbers from character
// state and a read-only catalog.
//
// Compute is total and side-effect free: it never errors, and invalid or
// incomplete sheets still yield numeric results. All values are recomputed
// from scratch on every call; the inputs are a handful of scalars and a few
// dozen rows, so there is nothing worth caching.
package derive

import (
	"sort"
	"strings"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
)

// EvadeSkillName is the skill consulted by the evasion formula.
const EvadeSkillName = "Evade"

// RequirementPenalty is applied to hit and evasion when an equipped item's
// minimum skill requirement is not met.
const RequirementPenalty = -20

// MoneyUnit scales the initial-money product.
const MoneyUnit = 1000

// SkillValue is one skill row's resolved name and final level.
type SkillValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// WeaponHit is the hit line for one equipped weapon.
type WeaponHit struct {
	Slot character.Slot `json:"slot"`
	ID   int            `json:"id"`
	Name string         `json:"name"`
	Hit  int            `json:"hit"`
	// RequirementMet is false when the weapon's minimum skill requirement
	// failed and RequirementPenalty was applied.
	RequirementMet bool `json:"requirementMet"`
}

// Stats is the full derived block of a sheet.
type Stats struct {
	Modifiers map[character.Ability]int `json:"modifiers"`

	HPNormal int `json:"hpNormal"`
	HPWound  int `json:"hpWound"`
	MP       int `json:"mp"`

	Melee  int `json:"melee"`
	Ranged int `json:"ranged"`
	Resist int `json:"resist"`

	Skills []SkillValue `json:"skills"`

	Evasion    int         `json:"evasion"`
	WeaponHits []WeaponHit `json:"weaponHits"`
	Defense    int         `json:"defense"`
}

// RoundTo10 floors x to a multiple of 10, with the Encore negative quirk:
// values strictly between -10 and 0 round to exactly -10, not 0. The quirk
// is part of the rule system and is preserved deliberately.
func RoundTo10(x int) int {
	switch {
	case x >= 0:
		return x / 10 * 10
	case x > -10:
		return -10
	default:
		q := x / 10
		if x%10 != 0 {
			q--
		}
		return q * 10
	}
}

// InitialMoney is the one-shot starting-money formula. The result is written
// into the sheet by an explicit action, never recomputed afterwards.
func InitialMoney(intScore, dexScore int) int {
	return intScore * dexScore * MoneyUnit
}

// Compute folds the sheet into its derived numbers.
//
// Precondition: s must be non-nil; cat may be nil, in which case every
// catalog-dependent term contributes 0.
// Postcondition: Never errors. Skill rows that resolve to nothing, empty
// equipment slots, and dangling references all contribute 0.
func Compute(s *character.State, cat *catalog.Catalog) *Stats {
	a := s.Abilities
	st := &Stats{
		Modifiers: map[character.Ability]int{
			character.AbilitySTR: a.Modifier(a.Str),
			character.AbilityDEX: a.Modifier(a.Dex),
			character.AbilityAGI: a.Modifier(a.Agi),
			character.AbilityVIT: a.Modifier(a.Vit),
			character.AbilityINT: a.Modifier(a.Int),
			character.AbilityPSY: a.Modifier(a.Psy),
		},

		// Resource bases are raw scores, not modifiers.
		HPNormal: a.Str + a.Dex + s.Offsets.HPNormal,
		HPWound:  a.Agi + a.Vit + s.Offsets.HPWound,
		MP:       a.Int + a.Psy + s.Offsets.MP,
	}
	st.Melee = st.Modifiers[character.AbilitySTR] + st.Modifiers[character.AbilityAGI]
	st.Ranged = st.Modifiers[character.AbilityDEX] + st.Modifiers[character.AbilityINT]
	st.Resist = st.Modifiers[character.AbilityPSY] + st.Modifiers[character.AbilityVIT]

	st.Skills = skillValues(s, cat)

	st.Evasion = evasion(s, cat, st)
	st.WeaponHits = weaponHits(s, cat, st)
	st.Defense = defense(s, cat)
	return st
}

// skillValues resolves every row's display name and final level. The final
// level is rebuilt from the base level and the confirmed bonus tracks, so a
// stale stored level can never leak into derived numbers.
func skillValues(s *character.State, cat *catalog.Catalog) []SkillValue {
	if len(s.Skills) == 0 {
		return nil
	}
	intBonus := bonusFor(s, character.BonusInt)
	dexBonus := bonusFor(s, character.BonusDex)

	out := make([]SkillValue, len(s.Skills))
	for i, row := range s.Skills {
		v := row.BaseLevel
		if intBonus > 0 && s.Bonuses.Int.Confirmed && targeted(s.Bonuses.Int.Targets, i) {
			v += intBonus
		}
		if dexBonus > 0 && s.Bonuses.Dex.Confirmed && targeted(s.Bonuses.Dex.Targets, i) {
			v += dexBonus
		}
		out[i] = SkillValue{Name: skillName(row, cat), Value: v}
	}
	return out
}

// FinalSkillValue returns the final level of the named skill, matching
// exactly first and case-insensitively second. An unselected skill is 0,
// never an error.
func (st *Stats) FinalSkillValue(name string) int {
	for _, sv := range st.Skills {
		if sv.Name == name {
			return sv.Value
		}
	}
	for _, sv := range st.Skills {
		if strings.EqualFold(sv.Name, name) {
			return sv.Value
		}
	}
	return 0
}

func evasion(s *character.State, cat *catalog.Catalog, st *Stats) int {
	raw := st.Modifiers[character.AbilityAGI] + st.FinalSkillValue(EvadeSkillName)

	penalty := 0
	if armor := equippedEntry(cat, "armor", s.Equipment.Armor); armor != nil {
		raw += armor.Int("evade")
		if !requirementsMet(st, armor) {
			penalty += RequirementPenalty
		}
	}
	if shield := equippedEntry(cat, "shield", s.Equipment.Shield); shield != nil {
		raw += shield.Int("evade") + shield.Int("text_bonus")
		if !requirementsMet(st, shield) {
			penalty += RequirementPenalty
		}
	}
	return RoundTo10(raw) + penalty
}

func weaponHits(s *character.State, cat *catalog.Catalog, st *Stats) []WeaponHit {
	var out []WeaponHit
	slots := []struct {
		slot character.Slot
		id   int
	}{
		{character.SlotWeaponRight, s.Equipment.WeaponRight},
		{character.SlotWeaponLeft, s.Equipment.WeaponLeft},
	}
	for i, sl := range slots {
		// A two-handed weapon fills both slots but gets one hit line.
		if s.Equipment.TwoHanded && i > 0 {
			break
		}
		w := equippedEntry(cat, "weapon", sl.id)
		if w == nil {
			continue
		}
		combat := st.Melee
		if w.Str("range") == "ranged" {
			combat = st.Ranged
		}
		hit := w.Int("hit") + combat + governingSkillLevel(st, w)
		met := requirementsMet(st, w)
		if !met {
			hit += RequirementPenalty
		}
		out = append(out, WeaponHit{
			Slot:           sl.slot,
			ID:             w.ID,
			Name:           w.Name,
			Hit:            hit,
			RequirementMet: met,
		})
	}
	return out
}

func defense(s *character.State, cat *catalog.Catalog) int {
	total := 0
	if armor := equippedEntry(cat, "armor", s.Equipment.Armor); armor != nil {
		total += armor.Int("defense")
	}
	if shield := equippedEntry(cat, "shield", s.Equipment.Shield); shield != nil {
		total += shield.Int("defense")
	}
	return total
}

// governingSkillLevel is the character's level in the weapon's requirement
// skill. A weapon requiring several skills uses the highest held level; a
// weapon with no requirement contributes 0.
func governingSkillLevel(st *Stats, w *catalog.Entry) int {
	reqs := w.Requirements("requires")
	if len(reqs) == 0 {
		return 0
	}
	names := make([]string, 0, len(reqs))
	for name := range reqs {
		names = append(names, name)
	}
	sort.Strings(names)
	best := 0
	for _, name := range names {
		if v := st.FinalSkillValue(name); v > best {
			best = v
		}
	}
	return best
}

// requirementsMet reports whether every minimum skill level an item declares
// is met by the sheet's final skill values.
func requirementsMet(st *Stats, e *catalog.Entry) bool {
	for name, min := range e.Requirements("requires") {
		if st.FinalSkillValue(name) < min {
			return false
		}
	}
	return true
}

func equippedEntry(cat *catalog.Catalog, category string, id int) *catalog.Entry {
	if cat == nil || id == 0 {
		return nil
	}
	return cat.Get(category, id)
}

func skillName(row character.SkillRow, cat *catalog.Catalog) string {
	if row.Source == character.SkillMaster {
		if cat != nil {
			if e := cat.Get(cat.Registry().SkillCategory, row.RefID); e != nil {
				return e.Name
			}
		}
		return ""
	}
	return row.Name
}

func bonusFor(s *character.State, kind character.BonusKind) int {
	var mod int
	switch kind {
	case character.BonusInt:
		mod = s.Abilities.Modifier(s.Abilities.Int)
	case character.BonusDex:
		mod = s.Abilities.Modifier(s.Abilities.Dex)
	}
	if mod < 0 {
		return 0
	}
	return mod
}

func targeted(targets []int, index int) bool {
	for _, t := range targets {
		if t == index {
			return true
		}
	}
	return false
}
