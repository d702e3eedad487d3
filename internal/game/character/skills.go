package character

import "fmt"

// SkillSource tags whether a skill row references master data or a custom name.
type SkillSource string

const (
	// SkillMaster references a master-catalog skill by id.
	SkillMaster SkillSource = "master"
	// SkillCustom is a player-named skill with no catalog row.
	SkillCustom SkillSource = "custom"
)

// Creation-mode skill rules.
const (
	// CreationSkillRows is the fixed row count during character creation.
	CreationSkillRows = 8
	// CreationSkillTotal caps the sum of base levels during creation.
	CreationSkillTotal = 80
	// SkillLevelStep is the allowed level granularity during creation.
	SkillLevelStep = 5
	// MinSkillLevel and MaxSkillLevel bound creation-mode base levels.
	MinSkillLevel = 5
	MaxSkillLevel = 20
)

// SkillRow is one selected skill slot.
//
// Level is the effective value after confirmed ability bonuses; BaseLevel is
// the pre-bonus value. Outside a confirmed bonus, Level == BaseLevel.
type SkillRow struct {
	Source SkillSource `json:"source"`
	// RefID is the master skill id; 0 for custom rows.
	RefID int `json:"refId,omitempty"`
	// Name is the custom skill name; resolved display name for master rows
	// is looked up from the catalog, not stored here.
	Name      string `json:"name,omitempty"`
	BaseLevel int    `json:"baseLevel"`
	Level     int    `json:"level"`
}

// HeroSkillRow is one selected hero/diva special skill.
type HeroSkillRow struct {
	Source SkillSource `json:"source"`
	RefID  int         `json:"refId,omitempty"`
	Name   string      `json:"name,omitempty"`
}

// AddMasterSkill appends a row referencing a master skill id.
//
// Precondition: refID > 0.
// Postcondition: Returns an error when the id is already selected
// (duplicate master selection is forbidden); the new row has
// Level == BaseLevel == baseLevel.
func (s *State) AddMasterSkill(refID, baseLevel int) error {
	if refID <= 0 {
		return fmt.Errorf("character: master skill id must be > 0, got %d", refID)
	}
	for _, row := range s.Skills {
		if row.Source == SkillMaster && row.RefID == refID {
			return fmt.Errorf("character: skill id %d is already selected", refID)
		}
	}
	s.Skills = append(s.Skills, SkillRow{
		Source:    SkillMaster,
		RefID:     refID,
		BaseLevel: baseLevel,
		Level:     baseLevel,
	})
	return nil
}

// AddCustomSkill appends a player-named skill row.
//
// Precondition: name must be non-empty.
// Postcondition: The new row has Level == BaseLevel == baseLevel. Name
// uniqueness is advisory and checked by Validate, not here; a player may be
// mid-edit.
func (s *State) AddCustomSkill(name string, baseLevel int) error {
	if name == "" {
		return fmt.Errorf("character: custom skill name must not be empty")
	}
	s.Skills = append(s.Skills, SkillRow{
		Source:    SkillCustom,
		Name:      name,
		BaseLevel: baseLevel,
		Level:     baseLevel,
	})
	return nil
}

// RemoveSkill deletes the row at index and drops any bonus targets pointing
// at or beyond it, shifting later targets down.
//
// Postcondition: Returns an error for an out-of-range index.
func (s *State) RemoveSkill(index int) error {
	if index < 0 || index >= len(s.Skills) {
		return fmt.Errorf("character: skill index %d out of range", index)
	}
	s.Skills = append(s.Skills[:index], s.Skills[index+1:]...)
	s.Bonuses.dropRow(index)
	return nil
}

// SetSkillBaseLevel updates a row's pre-bonus level. When the row is not a
// confirmed bonus target its effective Level follows; otherwise the
// confirmed delta is preserved.
func (s *State) SetSkillBaseLevel(index, baseLevel int) error {
	if index < 0 || index >= len(s.Skills) {
		return fmt.Errorf("character: skill index %d out of range", index)
	}
	row := &s.Skills[index]
	delta := row.Level - row.BaseLevel
	row.BaseLevel = baseLevel
	row.Level = baseLevel + delta
	return nil
}
