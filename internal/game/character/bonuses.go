package character

import "fmt"

// BonusKind names an ability-bonus track applied to skill rows during
// character creation.
type BonusKind string

const (
	// BonusInt is the intelligence-modifier track.
	BonusInt BonusKind = "int"
	// BonusDex is the dexterity-modifier track.
	BonusDex BonusKind = "dex"
)

// BonusTargetCount is the required number of targeted rows per track when
// the corresponding ability modifier is positive.
const BonusTargetCount = 2

// BonusTrack is one ability-bonus track: the targeted skill-row indices and
// whether the bonus has been applied to their effective levels.
//
// A track is in "draft" while Confirmed is false: targets may be edited
// freely and row levels are untouched. Confirming copies baseLevel + bonus
// into each targeted row's Level.
type BonusTrack struct {
	Targets   []int `json:"targets,omitempty"`
	Confirmed bool  `json:"confirmed"`
}

// BonusTargets holds both ability-bonus tracks.
type BonusTargets struct {
	Int BonusTrack `json:"int"`
	Dex BonusTrack `json:"dex"`
}

func (b BonusTargets) clone() BonusTargets {
	b.Int.Targets = append([]int(nil), b.Int.Targets...)
	b.Dex.Targets = append([]int(nil), b.Dex.Targets...)
	return b
}

// track returns a pointer to the named track, or nil for an unknown kind.
func (b *BonusTargets) track(kind BonusKind) *BonusTrack {
	switch kind {
	case BonusInt:
		return &b.Int
	case BonusDex:
		return &b.Dex
	default:
		return nil
	}
}

// dropRow removes any target pointing at the removed skill-row index and
// shifts later targets down by one. Called by RemoveSkill.
func (b *BonusTargets) dropRow(index int) {
	for _, tr := range []*BonusTrack{&b.Int, &b.Dex} {
		kept := tr.Targets[:0]
		for _, t := range tr.Targets {
			switch {
			case t == index:
				// dropped
			case t > index:
				kept = append(kept, t-1)
			default:
				kept = append(kept, t)
			}
		}
		tr.Targets = kept
	}
}

// bonusAmount returns the track's bonus from the current ability scores:
// max(0, modifier).
func (s *State) bonusAmount(kind BonusKind) int {
	var mod int
	switch kind {
	case BonusInt:
		mod = s.Abilities.Modifier(s.Abilities.Int)
	case BonusDex:
		mod = s.Abilities.Modifier(s.Abilities.Dex)
	}
	if mod < 0 {
		return 0
	}
	return mod
}

// SetBonusTargets replaces a track's draft target set.
//
// Precondition: the track must not be confirmed; call EditBonus first.
// Postcondition: Returns an error for an unknown kind, a confirmed track,
// or an out-of-range index. Target-count rules are advisory (Validate).
func (s *State) SetBonusTargets(kind BonusKind, targets []int) error {
	tr := s.Bonuses.track(kind)
	if tr == nil {
		return fmt.Errorf("character: unknown bonus kind %q", kind)
	}
	if tr.Confirmed {
		return fmt.Errorf("character: %s bonus is confirmed; edit it before retargeting", kind)
	}
	for _, t := range targets {
		if t < 0 || t >= len(s.Skills) {
			return fmt.Errorf("character: bonus target index %d out of range", t)
		}
	}
	tr.Targets = append([]int(nil), targets...)
	return nil
}

// ConfirmBonus applies a track's bonus: each targeted row's Level becomes
// BaseLevel + max(0, modifier).
//
// Postcondition: Returns an error for an unknown kind or an already
// confirmed track; the operation is idempotent per confirmation.
func (s *State) ConfirmBonus(kind BonusKind) error {
	tr := s.Bonuses.track(kind)
	if tr == nil {
		return fmt.Errorf("character: unknown bonus kind %q", kind)
	}
	if tr.Confirmed {
		return fmt.Errorf("character: %s bonus is already confirmed", kind)
	}
	bonus := s.bonusAmount(kind)
	for _, t := range tr.Targets {
		if t < 0 || t >= len(s.Skills) {
			continue
		}
		row := &s.Skills[t]
		row.Level = row.BaseLevel + bonus
	}
	tr.Confirmed = true
	return nil
}

// EditBonus returns a track to draft: every targeted row's Level reverts to
// BaseLevel and the confirmation is cleared. The target set is kept so the
// player can adjust it.
func (s *State) EditBonus(kind BonusKind) error {
	tr := s.Bonuses.track(kind)
	if tr == nil {
		return fmt.Errorf("character: unknown bonus kind %q", kind)
	}
	if tr.Confirmed {
		for _, t := range tr.Targets {
			if t < 0 || t >= len(s.Skills) {
				continue
			}
			row := &s.Skills[t]
			row.Level = row.BaseLevel
		}
	}
	tr.Confirmed = false
	return nil
}
