package catalog

import (
	"fmt"
	"strings"
)

// Datasets maps category name to raw rows, as decoded from JSON or YAML.
type Datasets map[string][]map[string]any

// Build merges master and user datasets into a lookup-indexed catalog.
// It is pure and synchronous; loading the raw datasets is the caller's
// concern (see LoadMaster).
//
// Per category: rows are normalized against the declared schema (invalid
// rows dropped with a diagnostic), within-source duplicate ids and names are
// dropped with a diagnostic, then user rows are merged over master rows:
// a user row whose id matches a master id replaces it in place, novel ids
// are appended. Name lookup is last-entry-wins across the merged order.
//
// After all categories are built, cross-references are validated; a dangling
// requirement-skill or item-bonus reference is a hard error.
//
// Precondition: reg must be non-nil and pass reg.Validate().
// Postcondition: Returns a complete Catalog with structured Diagnostics, or
// a non-nil error when cross-reference validation fails.
func Build(master, user Datasets, reg *Registry) (*Catalog, error) {
	c := &Catalog{
		registry:   reg,
		categories: make(map[string]*categoryIndex, len(reg.Categories)),
	}

	for _, cfg := range reg.Categories {
		masterRows := normalizeSource(master[cfg.Name], cfg, SourceMaster, &c.Diagnostics)
		userRows := normalizeSource(user[cfg.Name], cfg, SourceUser, &c.Diagnostics)
		c.categories[cfg.Name] = mergeCategory(cfg.Name, masterRows, userRows, &c.Diagnostics)
	}

	if err := c.validateCrossRefs(); err != nil {
		return nil, err
	}
	return c, nil
}

// normalizeSource normalizes one source's rows and drops within-source
// duplicate ids and names, emitting a diagnostic per drop.
func normalizeSource(raw []map[string]any, cfg CategoryConfig, source Source, diags *[]Diagnostic) []*Entry {
	out := make([]*Entry, 0, len(raw))
	seenID := make(map[int]bool, len(raw))
	seenName := make(map[string]bool, len(raw))

	for i, row := range raw {
		e, err := normalizeRow(row, cfg, source)
		if err != nil {
			*diags = append(*diags, Diagnostic{
				Severity: SeverityWarn,
				Code:     CodeRowDropped,
				Category: cfg.Name,
				Source:   source,
				Detail:   fmt.Sprintf("row %d: %v", i, err),
			})
			continue
		}
		if seenID[e.ID] {
			*diags = append(*diags, Diagnostic{
				Severity: SeverityWarn,
				Code:     CodeDuplicateID,
				Category: cfg.Name,
				Source:   source,
				RowID:    e.ID,
				RowName:  e.Name,
				Detail:   "duplicate id within source, row dropped",
			})
			continue
		}
		nameKey := strings.ToLower(e.Name)
		if seenName[nameKey] {
			*diags = append(*diags, Diagnostic{
				Severity: SeverityWarn,
				Code:     CodeDuplicateName,
				Category: cfg.Name,
				Source:   source,
				RowID:    e.ID,
				RowName:  e.Name,
				Detail:   "duplicate name within source, row dropped",
			})
			continue
		}
		seenID[e.ID] = true
		seenName[nameKey] = true
		out = append(out, e)
	}
	return out
}

// mergeCategory unions master and user rows with override-by-id semantics.
func mergeCategory(name string, masterRows, userRows []*Entry, diags *[]Diagnostic) *categoryIndex {
	idx := &categoryIndex{
		name:       name,
		byID:       make(map[int]*Entry),
		byName:     make(map[string]*Entry),
		byNameFold: make(map[string]*Entry),
		masterByID: make(map[int]*Entry, len(masterRows)),
		userByID:   make(map[int]*Entry, len(userRows)),
	}

	for _, e := range masterRows {
		idx.masterByID[e.ID] = e
	}
	for _, e := range userRows {
		idx.userByID[e.ID] = e
	}

	// Master order is preserved; an overriding user row takes the master
	// row's position. Remaining user rows append in their own order.
	merged := make([]*Entry, 0, len(masterRows)+len(userRows))
	overridden := make(map[int]bool)
	for _, m := range masterRows {
		if u, ok := idx.userByID[m.ID]; ok {
			merged = append(merged, u)
			overridden[m.ID] = true
			*diags = append(*diags, Diagnostic{
				Severity: SeverityInfo,
				Code:     CodeOverride,
				Category: name,
				Source:   SourceUser,
				RowID:    u.ID,
				RowName:  u.Name,
				Detail:   fmt.Sprintf("user row overrides master row %q", m.Name),
			})
			continue
		}
		merged = append(merged, m)
	}
	for _, u := range userRows {
		if !overridden[u.ID] {
			merged = append(merged, u)
		}
	}

	// Last entry wins on name collisions across sources. Override is
	// keyed by id, shadowing by name; a shadow is surfaced as a
	// diagnostic rather than blocked.
	for _, e := range merged {
		idx.byID[e.ID] = e
		foldKey := strings.ToLower(e.Name)
		if prev, ok := idx.byNameFold[foldKey]; ok && prev.Source != e.Source {
			*diags = append(*diags, Diagnostic{
				Severity: SeverityInfo,
				Code:     CodeNameShadowed,
				Category: name,
				Source:   e.Source,
				RowID:    e.ID,
				RowName:  e.Name,
				Detail:   fmt.Sprintf("name also defined by %s row id=%d; lookup returns the later entry", prev.Source, prev.ID),
			})
		}
		idx.byName[e.Name] = e
		idx.byNameFold[foldKey] = e
	}

	idx.entries = merged
	return idx
}
