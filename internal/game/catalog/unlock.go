package catalog

import "fmt"

// Reward is one item granted by an unlock threshold. Either Ref or Name is
// set; Name-only rewards resolve against the bonus-eligible categories.
type Reward struct {
	Ref  *Ref
	Name string
	Qty  int
}

func (r Reward) describe() string {
	if r.Ref != nil {
		switch r.Ref.Mode {
		case RefByKindID:
			return CompositeKey(r.Ref.Kind, r.Ref.ID)
		case RefByName:
			return fmt.Sprintf("%q", r.Ref.Name)
		default:
			return fmt.Sprintf("#%d", r.Ref.ID)
		}
	}
	return fmt.Sprintf("%q", r.Name)
}

// Threshold is one rung of an unlock table: the rewards earned upon reaching
// skill level At.
type Threshold struct {
	At    int
	Items []Reward
}

// UnlockTable maps skill-level thresholds to free-item rewards.
// Invariant: Thresholds are ascending by At with no duplicates (normalized
// at parse time).
type UnlockTable struct {
	Thresholds []Threshold
}

// Collected partitions an unlock table's rewards around a skill level.
type Collected struct {
	// Earned holds rewards at or below the level, in ascending threshold order.
	Earned []Reward
	// Future holds rewards above the level, in ascending threshold order.
	Future []Reward
}

// CollectUnlocked partitions the table's rewards into earned (threshold at
// or below level) and future (threshold above level).
//
// Precondition: table may be nil, which yields an empty result.
// Postcondition: len(Earned)+len(Future) equals the total reward count.
func CollectUnlocked(table *UnlockTable, level int) Collected {
	var out Collected
	if table == nil {
		return out
	}
	for _, th := range table.Thresholds {
		if th.At <= level {
			out.Earned = append(out.Earned, th.Items...)
		} else {
			out.Future = append(out.Future, th.Items...)
		}
	}
	return out
}

// ClaimSet tracks which unlock rewards have been claimed, keyed by the
// resolved entry's composite key. It is a plain key-set so a claim can be
// undone without ambiguity about which reward it was.
type ClaimSet map[string]struct{}

// NewClaimSet returns an empty ClaimSet.
func NewClaimSet() ClaimSet {
	return make(ClaimSet)
}

// Claim marks the key as claimed.
func (s ClaimSet) Claim(key string) {
	s[key] = struct{}{}
}

// Unclaim removes the key; unclaiming an unclaimed key is a no-op.
func (s ClaimSet) Unclaim(key string) {
	delete(s, key)
}

// Claimed reports whether the key has been claimed.
func (s ClaimSet) Claimed(key string) bool {
	_, ok := s[key]
	return ok
}
