// Package character defines the Encore character-sheet state aggregate and
// its named update operations.
//
// A sheet's state is owned by exactly one editing session at a time. Update
// operations mutate the session's copy; Clone produces the wholesale
// snapshots used for persistence, history, and share codes.
package character

// SheetVersion tags persisted state blobs for forward migration.
const SheetVersion = 2

// Method tags how a character's ability scores were generated.
type Method string

const (
	// MethodPoint is point-buy allocation against a fixed budget.
	MethodPoint Method = "point"
	// MethodRoll is random generation.
	MethodRoll Method = "roll"
)

// Ability score bounds and the point-buy budget.
const (
	MinScore     = 2
	MaxScore     = 20
	DefaultScore = 10
	PointBudget  = 70
)

// Ability identifies one of the six Encore ability scores.
type Ability string

const (
	AbilitySTR Ability = "str"
	AbilityDEX Ability = "dex"
	AbilityAGI Ability = "agi"
	AbilityVIT Ability = "vit"
	AbilityINT Ability = "int"
	AbilityPSY Ability = "psy"
)

// Abilities lists the six abilities in canonical sheet order.
var Abilities = []Ability{AbilitySTR, AbilityDEX, AbilityAGI, AbilityVIT, AbilityINT, AbilityPSY}

// AbilityScores holds the six Encore ability score values for a character.
type AbilityScores struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Agi int `json:"agi"`
	Vit int `json:"vit"`
	Int int `json:"int"`
	Psy int `json:"psy"`

	// Method records how the scores were generated.
	Method Method `json:"method"`
}

// DefaultAbilities returns all six scores at the default value under
// point-buy.
func DefaultAbilities() AbilityScores {
	return AbilityScores{
		Str: DefaultScore, Dex: DefaultScore, Agi: DefaultScore,
		Vit: DefaultScore, Int: DefaultScore, Psy: DefaultScore,
		Method: MethodPoint,
	}
}

// Modifier returns the Encore ability modifier for a given score: score - 10.
func (a AbilityScores) Modifier(score int) int {
	return score - 10
}

// Score returns the raw score for the named ability.
//
// Postcondition: Returns 0 for an unknown ability name.
func (a AbilityScores) Score(ab Ability) int {
	switch ab {
	case AbilitySTR:
		return a.Str
	case AbilityDEX:
		return a.Dex
	case AbilityAGI:
		return a.Agi
	case AbilityVIT:
		return a.Vit
	case AbilityINT:
		return a.Int
	case AbilityPSY:
		return a.Psy
	default:
		return 0
	}
}

// SetScore sets the raw score for the named ability; unknown names are ignored.
func (a *AbilityScores) SetScore(ab Ability, score int) {
	switch ab {
	case AbilitySTR:
		a.Str = score
	case AbilityDEX:
		a.Dex = score
	case AbilityAGI:
		a.Agi = score
	case AbilityVIT:
		a.Vit = score
	case AbilityINT:
		a.Int = score
	case AbilityPSY:
		a.Psy = score
	}
}

// Sum returns the total of all six raw scores.
func (a AbilityScores) Sum() int {
	return a.Str + a.Dex + a.Agi + a.Vit + a.Int + a.Psy
}

// ResourceOffsets are the manual variance offsets a player applies on top of
// the computed HP/MP bases. They are persisted independently of the formula.
type ResourceOffsets struct {
	HPNormal int `json:"hpNormal"`
	HPWound  int `json:"hpWound"`
	MP       int `json:"mp"`
}

// Basic holds the free-text identity block of a sheet.
type Basic struct {
	Name   string `json:"name"`
	Player string `json:"player"`
	Memo   string `json:"memo"`
}

// State is the root character-sheet aggregate. It is persisted as a JSON
// blob and replaced wholesale on every transformation.
type State struct {
	Version   int             `json:"version"`
	Basic     Basic           `json:"basic"`
	Abilities AbilityScores   `json:"abilities"`
	Offsets   ResourceOffsets `json:"offsets"`

	Skills     []SkillRow     `json:"skills"`
	HeroSkills []HeroSkillRow `json:"heroSkills"`
	Bonuses    BonusTargets   `json:"bonuses"`

	Equipment EquippedSet      `json:"equipment"`
	Inventory []InventoryEntry `json:"inventory"`

	// Money is set once from the initial-money formula and then spent and
	// earned by play; it is never recomputed.
	Money int `json:"money"`
	// MoneySet records whether the one-shot initial-money action ran.
	MoneySet bool `json:"moneySet"`

	// Claims tracks which unlock-table rewards have been taken, keyed by
	// "category:id@threshold".
	Claims map[string]struct{} `json:"claims,omitempty"`
}

// NewState returns a fresh default sheet.
//
// Postcondition: All scores are 10 under point-buy, no skills are selected,
// and every equipment slot is empty.
func NewState() *State {
	return &State{
		Version:   SheetVersion,
		Abilities: DefaultAbilities(),
	}
}

// Clone returns a deep copy of the state. Mutating the copy never affects
// the original.
func (s *State) Clone() *State {
	out := *s
	out.Skills = append([]SkillRow(nil), s.Skills...)
	out.HeroSkills = append([]HeroSkillRow(nil), s.HeroSkills...)
	out.Inventory = append([]InventoryEntry(nil), s.Inventory...)
	out.Bonuses = s.Bonuses.clone()
	if s.Claims != nil {
		out.Claims = make(map[string]struct{}, len(s.Claims))
		for k := range s.Claims {
			out.Claims[k] = struct{}{}
		}
	}
	return &out
}

// SetMoney records the one-shot initial money value. Spend and Earn are the
// in-play mutations.
//
// Postcondition: Returns false and changes nothing once the one-shot has
// run, so a re-run can never wipe spent or earned funds.
func (s *State) SetMoney(amount int) bool {
	if s.MoneySet {
		return false
	}
	s.Money = amount
	s.MoneySet = true
	return true
}

// Spend debits amount from Money.
//
// Precondition: amount >= 0.
// Postcondition: Returns false and leaves Money unchanged when funds are
// insufficient.
func (s *State) Spend(amount int) bool {
	if amount < 0 || s.Money < amount {
		return false
	}
	s.Money -= amount
	return true
}

// Earn credits amount to Money.
//
// Precondition: amount >= 0; negative amounts are ignored.
func (s *State) Earn(amount int) {
	if amount > 0 {
		s.Money += amount
	}
}

// ClaimReward marks an unlock reward key as taken.
func (s *State) ClaimReward(key string) {
	if s.Claims == nil {
		s.Claims = make(map[string]struct{})
	}
	s.Claims[key] = struct{}{}
}

// UnclaimReward removes an unlock reward key; unknown keys are a no-op.
func (s *State) UnclaimReward(key string) {
	delete(s.Claims, key)
}

// RewardClaimed reports whether an unlock reward key has been taken.
func (s *State) RewardClaimed(key string) bool {
	_, ok := s.Claims[key]
	return ok
}
