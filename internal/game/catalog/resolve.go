package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// RefMode discriminates the parsed shape of a loose reference.
type RefMode int

const (
	// RefByID is a bare numeric id, resolved against a caller-supplied
	// default category only.
	RefByID RefMode = iota
	// RefByKindID is an explicit category + id pair.
	RefByKindID
	// RefByName is a name, optionally scoped to a category.
	RefByName
)

// Ref is the tagged-union form of a loose reference. References arrive from
// user data as numbers, "kind:id" strings, or objects with several possible
// key names; ParseRef classifies them once at the boundary so no shape
// sniffing leaks into callers.
type Ref struct {
	Mode RefMode
	Kind string
	ID   int
	Name string
}

// CompositeKey renders the canonical "category:id" form of a reference.
func CompositeKey(category string, id int) string {
	return fmt.Sprintf("%s:%d", category, id)
}

// ParseRef classifies a raw reference value.
//
// Accepted shapes, in priority order:
//  1. a "kind:id" composite string
//  2. an object with explicit kind and id
//  3. an object with a name, optionally scoped by kind
//  4. a bare number or numeric string
//
// Postcondition: ok is false for nil and for shapes matching none of the above.
func ParseRef(v any) (Ref, bool) {
	switch ref := v.(type) {
	case nil:
		return Ref{}, false
	case string:
		return parseRefString(ref)
	case map[string]any:
		return parseRefObject(ref)
	case map[any]any:
		m, ok := toStringKeyMap(ref)
		if !ok {
			return Ref{}, false
		}
		return parseRefObject(m)
	case Ref:
		return ref, true
	case *Ref:
		if ref == nil {
			return Ref{}, false
		}
		return *ref, true
	default:
		if id, ok := coerceInt(v); ok {
			return Ref{Mode: RefByID, ID: id}, true
		}
		return Ref{}, false
	}
}

func parseRefString(s string) (Ref, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, false
	}
	if kind, idPart, found := strings.Cut(s, ":"); found {
		id, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil || strings.TrimSpace(kind) == "" {
			return Ref{}, false
		}
		return Ref{Mode: RefByKindID, Kind: strings.TrimSpace(kind), ID: id}, true
	}
	if id, err := strconv.Atoi(s); err == nil {
		return Ref{Mode: RefByID, ID: id}, true
	}
	return Ref{}, false
}

func parseRefObject(m map[string]any) (Ref, bool) {
	kind, _ := coerceString(m["kind"])
	kind = strings.TrimSpace(kind)

	if rawID, present := m["id"]; present {
		id, ok := coerceInt(rawID)
		if !ok {
			return Ref{}, false
		}
		if kind != "" {
			return Ref{Mode: RefByKindID, Kind: kind, ID: id}, true
		}
		return Ref{Mode: RefByID, ID: id}, true
	}

	if rawName, present := m["name"]; present {
		name, ok := coerceString(rawName)
		if !ok || strings.TrimSpace(name) == "" {
			return Ref{}, false
		}
		return Ref{Mode: RefByName, Kind: kind, Name: name}, true
	}

	return Ref{}, false
}

// ResolveOptions scope a resolution.
type ResolveOptions struct {
	// DefaultCategory is the category bare numeric ids resolve against, and
	// the category an unscoped name search starts with.
	DefaultCategory string
}

// Resolve turns a parsed reference into a concrete catalog entry.
//
// Postcondition: Returns nil, never an error, when nothing matches; callers
// must treat an unresolved reference as "item unavailable". Name matches try
// exact equality first and case-insensitive equality second; an unscoped name
// is searched across all categories starting with the default.
func (c *Catalog) Resolve(ref Ref, opts ResolveOptions) *Entry {
	switch ref.Mode {
	case RefByKindID:
		return c.Get(ref.Kind, ref.ID)
	case RefByID:
		if opts.DefaultCategory == "" {
			return nil
		}
		return c.Get(opts.DefaultCategory, ref.ID)
	case RefByName:
		if ref.Kind != "" {
			return c.GetByName(ref.Kind, ref.Name)
		}
		if opts.DefaultCategory != "" {
			if e := c.GetByName(opts.DefaultCategory, ref.Name); e != nil {
				return e
			}
		}
		for _, cc := range c.registry.Categories {
			if cc.Name == opts.DefaultCategory {
				continue
			}
			if e := c.GetByName(cc.Name, ref.Name); e != nil {
				return e
			}
		}
		return nil
	default:
		return nil
	}
}

// ResolveValue parses and resolves a raw reference value in one step.
//
// Postcondition: Returns nil when the value is not a reference shape or when
// nothing matches.
func (c *Catalog) ResolveValue(v any, defaultCategory string) *Entry {
	ref, ok := ParseRef(v)
	if !ok {
		return nil
	}
	return c.Resolve(ref, ResolveOptions{DefaultCategory: defaultCategory})
}
