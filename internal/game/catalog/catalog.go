// Package catalog merges the shipped Encore master datasets with player-authored
// custom entries and resolves loose references into concrete rows.
package catalog

import "strings"

// Source tags which dataset an entry came from.
type Source string

const (
	// SourceMaster marks rows from the shipped rulebook data.
	SourceMaster Source = "master"
	// SourceUser marks player-authored rows.
	SourceUser Source = "user"
)

// Entry is one normalized row of a merged catalog category.
// Fields holds schema-coerced values keyed by field name; use the typed
// accessors rather than reading the map directly.
type Entry struct {
	Source   Source
	Category string
	ID       int
	Name     string
	Fields   map[string]any
}

// Int returns the numeric field value, or 0 when absent.
func (e *Entry) Int(field string) int {
	if v, ok := e.Fields[field].(int); ok {
		return v
	}
	return 0
}

// Bool returns the boolean field value, or false when absent.
func (e *Entry) Bool(field string) bool {
	if v, ok := e.Fields[field].(bool); ok {
		return v
	}
	return false
}

// Str returns the string field value, or "" when absent.
func (e *Entry) Str(field string) string {
	if v, ok := e.Fields[field].(string); ok {
		return v
	}
	return ""
}

// Strings returns the string-list field value, or nil when absent.
func (e *Entry) Strings(field string) []string {
	if v, ok := e.Fields[field].([]string); ok {
		return v
	}
	return nil
}

// Requirements returns the requirement-skills field value (skill name to
// minimum level), or nil when the entry declares no requirements.
func (e *Entry) Requirements(field string) map[string]int {
	if v, ok := e.Fields[field].(map[string]int); ok {
		return v
	}
	return nil
}

// Unlocks returns the item-bonus threshold table, or nil when absent.
func (e *Entry) Unlocks(field string) *UnlockTable {
	if v, ok := e.Fields[field].(*UnlockTable); ok {
		return v
	}
	return nil
}

// Key returns the composite "category:id" key identifying the entry across
// all categories. Used by claim sets and inventory references.
func (e *Entry) Key() string {
	return CompositeKey(e.Category, e.ID)
}

// categoryIndex holds the merged entry list and lookup maps for one category.
type categoryIndex struct {
	name    string
	entries []*Entry

	// Merged lookups. byID prefers the user override; byName is
	// last-entry-wins across the merged list order.
	byID       map[int]*Entry
	byName     map[string]*Entry
	byNameFold map[string]*Entry

	masterByID map[int]*Entry
	userByID   map[int]*Entry
}

// Catalog is the immutable result of merging master and user datasets.
// Construct one with Build and pass it by reference to consumers; there is
// no ambient shared instance.
type Catalog struct {
	registry    *Registry
	categories  map[string]*categoryIndex
	Diagnostics []Diagnostic
}

// Registry returns the category registry the catalog was built against.
func (c *Catalog) Registry() *Registry {
	return c.registry
}

// Categories returns the category names in registry order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.registry.Categories))
	for _, cc := range c.registry.Categories {
		out = append(out, cc.Name)
	}
	return out
}

// Entries returns the merged, ordered entry list for the category, or nil
// for an unknown category.
func (c *Catalog) Entries(category string) []*Entry {
	if idx, ok := c.categories[category]; ok {
		return idx.entries
	}
	return nil
}

// Get returns the entry with the given id in the category, preferring a user
// override when one exists. Returns nil when not found.
func (c *Catalog) Get(category string, id int) *Entry {
	if idx, ok := c.categories[category]; ok {
		return idx.byID[id]
	}
	return nil
}

// GetByName returns the entry with the given name in the category, matching
// exactly first and case-insensitively second. Name lookup is last-entry-wins
// when master and user both define the name. Returns nil when not found.
func (c *Catalog) GetByName(category, name string) *Entry {
	idx, ok := c.categories[category]
	if !ok {
		return nil
	}
	if e, ok := idx.byName[name]; ok {
		return e
	}
	return idx.byNameFold[strings.ToLower(name)]
}
