package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// coerceInt converts JSON/YAML scalar representations to an int.
// Accepts int, int64, float64 with an integral value, and numeric strings.
func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func coerceBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0", "":
			return false, true
		}
	}
	return false, false
}

func coerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == math.Trunc(s) {
			return strconv.Itoa(int(s)), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	default:
		return "", false
	}
}

func coerceStringList(v any) ([]string, bool) {
	switch l := v.(type) {
	case []string:
		return l, true
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := coerceString(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		// Comma-separated shorthand used by hand-edited user rows.
		if strings.TrimSpace(l) == "" {
			return nil, true
		}
		parts := strings.Split(l, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, true
	default:
		return nil, false
	}
}

// coerceRequirements converts a {skillName: minLevel} map.
func coerceRequirements(v any) (map[string]int, bool) {
	raw, ok := toStringKeyMap(v)
	if !ok {
		return nil, false
	}
	out := make(map[string]int, len(raw))
	for name, lv := range raw {
		if strings.TrimSpace(name) == "" {
			return nil, false
		}
		n, ok := coerceInt(lv)
		if !ok {
			return nil, false
		}
		out[name] = n
	}
	return out, true
}

// coerceUnlockTable converts a {threshold: [{name|ref, qty}]} map into a
// normalized ascending UnlockTable. Duplicate thresholds are merged.
func coerceUnlockTable(v any) (*UnlockTable, bool) {
	raw, ok := toStringKeyMap(v)
	if !ok {
		return nil, false
	}
	byAt := make(map[int][]Reward, len(raw))
	for key, rewards := range raw {
		at, ok := coerceInt(key)
		if !ok {
			return nil, false
		}
		list, ok := rewards.([]any)
		if !ok {
			return nil, false
		}
		for _, item := range list {
			r, ok := coerceReward(item)
			if !ok {
				return nil, false
			}
			byAt[at] = append(byAt[at], r)
		}
	}

	table := &UnlockTable{Thresholds: make([]Threshold, 0, len(byAt))}
	for at, items := range byAt {
		table.Thresholds = append(table.Thresholds, Threshold{At: at, Items: items})
	}
	sort.Slice(table.Thresholds, func(i, j int) bool {
		return table.Thresholds[i].At < table.Thresholds[j].At
	})
	return table, true
}

func coerceReward(v any) (Reward, bool) {
	m, ok := toStringKeyMap(v)
	if !ok {
		return Reward{}, false
	}
	var r Reward
	if ref, present := m["ref"]; present {
		parsed, ok := ParseRef(ref)
		if !ok {
			return Reward{}, false
		}
		r.Ref = &parsed
	}
	if name, present := m["name"]; present {
		s, ok := coerceString(name)
		if !ok || strings.TrimSpace(s) == "" {
			return Reward{}, false
		}
		r.Name = s
	}
	if r.Ref == nil && r.Name == "" {
		return Reward{}, false
	}
	r.Qty = 1
	if qty, present := m["qty"]; present {
		n, ok := coerceInt(qty)
		if !ok || n < 0 {
			return Reward{}, false
		}
		r.Qty = n
	}
	return r, true
}

// toStringKeyMap accepts both JSON (map[string]any) and YAML (map[any]any)
// map shapes.
func toStringKeyMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := coerceString(k)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// normalizeRow coerces a raw row against the category schema.
//
// Postcondition: Returns a fully typed Entry, or a non-nil error naming the
// first offending field. Callers drop erroring rows with a diagnostic; a
// normalization failure is never fatal.
func normalizeRow(raw map[string]any, cfg CategoryConfig, source Source) (*Entry, error) {
	id, ok := coerceInt(raw["id"])
	if !ok {
		return nil, fmt.Errorf("field id: missing or non-numeric")
	}
	name, ok := coerceString(raw["name"])
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("field name: missing or empty")
	}

	e := &Entry{
		Source:   source,
		Category: cfg.Name,
		ID:       id,
		Name:     name,
		Fields:   make(map[string]any, len(cfg.Fields)),
	}

	for _, spec := range cfg.Fields {
		v, present := raw[spec.Name]
		if !present || v == nil {
			if spec.Required {
				return nil, fmt.Errorf("field %s: required but missing", spec.Name)
			}
			continue
		}
		switch spec.Kind {
		case KindNumber:
			n, ok := coerceInt(v)
			if !ok {
				return nil, fmt.Errorf("field %s: not a number", spec.Name)
			}
			e.Fields[spec.Name] = n
		case KindBool:
			b, ok := coerceBool(v)
			if !ok {
				return nil, fmt.Errorf("field %s: not a boolean", spec.Name)
			}
			e.Fields[spec.Name] = b
		case KindString:
			s, ok := coerceString(v)
			if !ok {
				return nil, fmt.Errorf("field %s: not a string", spec.Name)
			}
			e.Fields[spec.Name] = s
		case KindStringList:
			l, ok := coerceStringList(v)
			if !ok {
				return nil, fmt.Errorf("field %s: not a string list", spec.Name)
			}
			e.Fields[spec.Name] = l
		case KindRequirements:
			r, ok := coerceRequirements(v)
			if !ok {
				return nil, fmt.Errorf("field %s: not a requirement map", spec.Name)
			}
			e.Fields[spec.Name] = r
		case KindUnlockTable:
			tbl, ok := coerceUnlockTable(v)
			if !ok {
				return nil, fmt.Errorf("field %s: not an unlock table", spec.Name)
			}
			e.Fields[spec.Name] = tbl
		default:
			return nil, fmt.Errorf("field %s: unknown kind %q", spec.Name, spec.Kind)
		}
	}
	return e, nil
}
