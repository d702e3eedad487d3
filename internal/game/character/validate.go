package character

import (
	"fmt"
	"strings"
)

// Issue codes reported by Validate.
const (
	IssueAbilityRange       = "ability_out_of_range"
	IssuePointSum           = "point_sum_mismatch"
	IssueSkillRowCount      = "skill_row_count"
	IssueSkillLevel         = "skill_level_invalid"
	IssueSkillTotal         = "skill_total_exceeded"
	IssueDuplicateSkill     = "duplicate_skill"
	IssueCustomName         = "custom_name_invalid"
	IssueBonusTargetCount   = "bonus_target_count"
	IssueBonusTargetOverlap = "bonus_target_overlap"
)

// Issue is one advisory validation finding. Issues never block editing; a
// sheet may stay invalid while the player keeps working.
type Issue struct {
	Code   string
	Field  string
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s (%s): %s", i.Code, i.Field, i.Detail)
}

// Validate reports every rule violation on the sheet. With creation true the
// character-creation constraints (fixed row count, level steps, point
// totals, bonus targeting) are included; otherwise only the structural rules
// that hold for any sheet.
//
// Postcondition: Returns a possibly empty list; the state is never modified.
func Validate(s *State, creation bool) []Issue {
	var issues []Issue
	issues = append(issues, validateAbilities(s, creation)...)
	issues = append(issues, validateSkillRows(s, creation)...)
	if creation {
		issues = append(issues, validateBonusTargets(s)...)
	}
	return issues
}

func validateAbilities(s *State, creation bool) []Issue {
	var issues []Issue
	for _, ab := range Abilities {
		score := s.Abilities.Score(ab)
		if score < MinScore || score > MaxScore {
			issues = append(issues, Issue{
				Code:   IssueAbilityRange,
				Field:  string(ab),
				Detail: fmt.Sprintf("score %d outside [%d, %d]", score, MinScore, MaxScore),
			})
		}
	}
	if creation && s.Abilities.Method == MethodPoint {
		if sum := s.Abilities.Sum(); sum != PointBudget {
			issues = append(issues, Issue{
				Code:   IssuePointSum,
				Field:  "abilities",
				Detail: fmt.Sprintf("point total %d must equal %d", sum, PointBudget),
			})
		}
	}
	return issues
}

func validateSkillRows(s *State, creation bool) []Issue {
	var issues []Issue

	seenMaster := make(map[int]int, len(s.Skills))
	seenCustom := make(map[string]int, len(s.Skills))
	total := 0
	for i, row := range s.Skills {
		field := fmt.Sprintf("skills[%d]", i)
		total += row.BaseLevel

		switch row.Source {
		case SkillMaster:
			if prev, dup := seenMaster[row.RefID]; dup {
				issues = append(issues, Issue{
					Code:   IssueDuplicateSkill,
					Field:  field,
					Detail: fmt.Sprintf("master skill %d already selected at row %d", row.RefID, prev),
				})
			} else {
				seenMaster[row.RefID] = i
			}
		case SkillCustom:
			name := strings.TrimSpace(row.Name)
			if name == "" {
				issues = append(issues, Issue{
					Code:   IssueCustomName,
					Field:  field,
					Detail: "custom skill name must not be empty",
				})
				break
			}
			key := strings.ToLower(name)
			if prev, dup := seenCustom[key]; dup {
				issues = append(issues, Issue{
					Code:   IssueCustomName,
					Field:  field,
					Detail: fmt.Sprintf("custom skill name %q already used at row %d", row.Name, prev),
				})
			} else {
				seenCustom[key] = i
			}
		}

		if creation {
			if row.BaseLevel < MinSkillLevel || row.BaseLevel > MaxSkillLevel || row.BaseLevel%SkillLevelStep != 0 {
				issues = append(issues, Issue{
					Code:   IssueSkillLevel,
					Field:  field,
					Detail: fmt.Sprintf("base level %d must be a multiple of %d in [%d, %d]", row.BaseLevel, SkillLevelStep, MinSkillLevel, MaxSkillLevel),
				})
			}
		}
	}

	if creation {
		if len(s.Skills) != CreationSkillRows {
			issues = append(issues, Issue{
				Code:   IssueSkillRowCount,
				Field:  "skills",
				Detail: fmt.Sprintf("creation requires exactly %d rows, got %d", CreationSkillRows, len(s.Skills)),
			})
		}
		if total > CreationSkillTotal {
			issues = append(issues, Issue{
				Code:   IssueSkillTotal,
				Field:  "skills",
				Detail: fmt.Sprintf("base level total %d exceeds %d", total, CreationSkillTotal),
			})
		}
	}
	return issues
}

func validateBonusTargets(s *State) []Issue {
	var issues []Issue

	check := func(kind BonusKind, tr BonusTrack) {
		field := string(kind) + "_bonus"
		want := 0
		if s.bonusAmount(kind) > 0 {
			want = BonusTargetCount
		}
		if len(tr.Targets) != want {
			issues = append(issues, Issue{
				Code:   IssueBonusTargetCount,
				Field:  field,
				Detail: fmt.Sprintf("track needs %d targets, got %d", want, len(tr.Targets)),
			})
		}
		seen := make(map[int]bool, len(tr.Targets))
		for _, t := range tr.Targets {
			if seen[t] {
				issues = append(issues, Issue{
					Code:   IssueBonusTargetOverlap,
					Field:  field,
					Detail: fmt.Sprintf("row %d targeted twice within the track", t),
				})
			}
			seen[t] = true
		}
	}
	check(BonusInt, s.Bonuses.Int)
	check(BonusDex, s.Bonuses.Dex)

	// When both tracks apply, all four targeted rows must be pairwise distinct.
	if s.bonusAmount(BonusInt) > 0 && s.bonusAmount(BonusDex) > 0 {
		intSet := make(map[int]bool, len(s.Bonuses.Int.Targets))
		for _, t := range s.Bonuses.Int.Targets {
			intSet[t] = true
		}
		for _, t := range s.Bonuses.Dex.Targets {
			if intSet[t] {
				issues = append(issues, Issue{
					Code:   IssueBonusTargetOverlap,
					Field:  "bonuses",
					Detail: fmt.Sprintf("row %d targeted by both the int and dex tracks", t),
				})
			}
		}
	}
	return issues
}
