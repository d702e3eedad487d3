package catalog

import "fmt"

// validateCrossRefs checks every structured reference in the merged catalog.
// It runs once after all categories are built, because cross-category
// references must see the complete picture.
//
// Requirement-skill names must resolve in the registry's skill category;
// item-bonus reward references must resolve in a bonus-eligible category.
// A dangling reference means corrupt master data: the catalog cannot be used
// safely, so the failure is hard.
//
// Postcondition: Returns nil iff every reference resolves.
func (c *Catalog) validateCrossRefs() error {
	eligible := c.registry.BonusEligible()

	for _, cfg := range c.registry.Categories {
		for _, e := range c.Entries(cfg.Name) {
			for _, spec := range cfg.Fields {
				switch spec.Kind {
				case KindRequirements:
					for skillName := range e.Requirements(spec.Name) {
						if c.GetByName(c.registry.SkillCategory, skillName) == nil {
							return fmt.Errorf(
								"catalog: %s %q (id=%d) field %s references unknown skill %q",
								cfg.Name, e.Name, e.ID, spec.Name, skillName)
						}
					}
				case KindUnlockTable:
					table := e.Unlocks(spec.Name)
					if table == nil {
						continue
					}
					for _, th := range table.Thresholds {
						for _, r := range th.Items {
							if !c.rewardResolves(r, eligible) {
								return fmt.Errorf(
									"catalog: %s %q (id=%d) field %s threshold %d references unresolvable reward %s",
									cfg.Name, e.Name, e.ID, spec.Name, th.At, r.describe())
							}
						}
					}
				}
			}
		}
	}
	return nil
}

// rewardResolves reports whether one unlock reward points at an existing
// entry in a bonus-eligible category. A kind-scoped ref is held to the
// eligible set too; "skill:3" may parse but is not a grantable reward.
func (c *Catalog) rewardResolves(r Reward, eligible []string) bool {
	if r.Ref != nil {
		if r.Ref.Kind != "" {
			if !containsCategory(eligible, r.Ref.Kind) {
				return false
			}
			return c.Resolve(*r.Ref, ResolveOptions{}) != nil
		}
		for _, cat := range eligible {
			if c.Resolve(*r.Ref, ResolveOptions{DefaultCategory: cat}) != nil {
				return true
			}
		}
		return false
	}
	for _, cat := range eligible {
		if c.GetByName(cat, r.Name) != nil {
			return true
		}
	}
	return false
}

func containsCategory(categories []string, name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}
