package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldKind enumerates the value types a schema field may declare.
type FieldKind string

const (
	// KindNumber is an integer field.
	KindNumber FieldKind = "number"
	// KindBool is a boolean field.
	KindBool FieldKind = "bool"
	// KindString is a free-text field.
	KindString FieldKind = "string"
	// KindStringList is a list-of-strings field.
	KindStringList FieldKind = "string_list"
	// KindRequirements is a skill-name to minimum-level map field.
	KindRequirements FieldKind = "requirements"
	// KindUnlockTable is a threshold to reward-list map field.
	KindUnlockTable FieldKind = "unlock_table"
)

// validFieldKinds is the set of legal FieldKind values.
var validFieldKinds = map[FieldKind]struct{}{
	KindNumber:       {},
	KindBool:         {},
	KindString:       {},
	KindStringList:   {},
	KindRequirements: {},
	KindUnlockTable:  {},
}

// FieldSpec declares one schema field. The implicit "id" (number) and
// "name" (string) fields are required on every category and never listed.
type FieldSpec struct {
	Name     string    `yaml:"name"`
	Kind     FieldKind `yaml:"kind"`
	Required bool      `yaml:"required"`
}

// CategoryConfig declares one catalog category: its schema, its master data
// file, and whether its entries may be granted by item-bonus tables.
type CategoryConfig struct {
	// Name is the category key (e.g. "weapon", "skill").
	Name string `yaml:"name"`
	// File is the master dataset JSON file, relative to the registry file.
	File string `yaml:"file"`
	// BonusEligible marks the category as a legal target for item-bonus rewards.
	BonusEligible bool `yaml:"bonus_eligible"`
	// Fields is the declared schema beyond the implicit id and name.
	Fields []FieldSpec `yaml:"fields"`
}

// Registry maps category names to schemas and master data sources.
// It is declared once (data/catalog.yaml) and injected into Build.
type Registry struct {
	// SkillCategory names the category requirement-skill references resolve against.
	SkillCategory string `yaml:"skill_category"`
	// Categories lists every category in display order.
	Categories []CategoryConfig `yaml:"categories"`
}

// Category returns the config for the named category, if declared.
func (r *Registry) Category(name string) (CategoryConfig, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryConfig{}, false
}

// BonusEligible returns the names of all bonus-eligible categories.
func (r *Registry) BonusEligible() []string {
	var out []string
	for _, c := range r.Categories {
		if c.BonusEligible {
			out = append(out, c.Name)
		}
	}
	return out
}

// Validate checks the registry invariants.
//
// Postcondition: Returns nil iff category names are non-empty and unique,
// every field kind is legal, and SkillCategory is declared.
func (r *Registry) Validate() error {
	if r.SkillCategory == "" {
		return fmt.Errorf("catalog: registry skill_category must not be empty")
	}
	seen := make(map[string]bool, len(r.Categories))
	skillDeclared := false
	for _, c := range r.Categories {
		if c.Name == "" {
			return fmt.Errorf("catalog: registry category name must not be empty")
		}
		if seen[c.Name] {
			return fmt.Errorf("catalog: registry category %q declared twice", c.Name)
		}
		seen[c.Name] = true
		if c.Name == r.SkillCategory {
			skillDeclared = true
		}
		for _, f := range c.Fields {
			if f.Name == "" {
				return fmt.Errorf("catalog: category %q has a field with no name", c.Name)
			}
			if _, ok := validFieldKinds[f.Kind]; !ok {
				return fmt.Errorf("catalog: category %q field %q has unknown kind %q", c.Name, f.Name, f.Kind)
			}
		}
	}
	if !skillDeclared {
		return fmt.Errorf("catalog: skill_category %q is not a declared category", r.SkillCategory)
	}
	return nil
}

// LoadRegistry reads and validates a category registry from a YAML file.
//
// Precondition: path must point to a readable YAML file.
// Postcondition: Returns a validated Registry or a non-nil error.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading registry %q: %w", path, err)
	}
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("catalog: parsing registry %q: %w", path, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}
