package session

import (
	"errors"
	"fmt"

	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
	"github.com/encore-rpg/sheetsmith/internal/game/derive"
)

// ErrUnavailable is returned when a purchase or claim references an entry
// the catalog cannot resolve. Dangling references are expected (user data
// gets renamed and deleted), so this is an ordinary failure, not corruption.
var ErrUnavailable = errors.New("session: entry unavailable")

// ErrInsufficientFunds is returned when a purchase exceeds the sheet's money.
var ErrInsufficientFunds = errors.New("session: insufficient funds")

// ErrMoneyAlreadySet is returned when the one-shot initial-money action is
// re-run on a sheet whose funds are already live.
var ErrMoneyAlreadySet = errors.New("session: initial money already set")

// SetInitialMoney applies the starting-money formula to the sheet. It is a
// one-shot action: money is spent and earned afterwards, never recomputed,
// and a second run is refused rather than restoring full starting funds.
func (s *Session) SetInitialMoney() error {
	return s.Apply(func(st *character.State) error {
		if !st.SetMoney(derive.InitialMoney(st.Abilities.Int, st.Abilities.Dex)) {
			return ErrMoneyAlreadySet
		}
		return nil
	})
}

// Purchase buys qty units of a catalog entry: debits price × qty and adds
// the units to the inventory.
//
// Precondition: qty > 0.
// Postcondition: On any error the sheet is unchanged.
func (s *Session) Purchase(cat *catalog.Catalog, category string, id, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("session: purchase quantity must be > 0, got %d", qty)
	}
	entry := cat.Get(category, id)
	if entry == nil {
		return fmt.Errorf("%w: %s:%d", ErrUnavailable, category, id)
	}
	cost := entry.Int("price") * qty
	return s.Apply(func(st *character.State) error {
		if !st.Spend(cost) {
			return fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientFunds, entry.Name, cost, st.Money)
		}
		return st.AddInventory(category, id, qty)
	})
}

// Sell removes qty units from the inventory and credits the entry's full
// price per unit.
func (s *Session) Sell(cat *catalog.Catalog, category string, id, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("session: sell quantity must be > 0, got %d", qty)
	}
	entry := cat.Get(category, id)
	if entry == nil {
		return fmt.Errorf("%w: %s:%d", ErrUnavailable, category, id)
	}
	return s.Apply(func(st *character.State) error {
		if st.InventoryQty(category, id) < qty {
			return fmt.Errorf("session: only %d of %q carried, cannot sell %d", st.InventoryQty(category, id), entry.Name, qty)
		}
		if err := st.AdjustInventory(category, id, -qty); err != nil {
			return err
		}
		st.Earn(entry.Int("price") * qty)
		return nil
	})
}

// ClaimUnlock takes a free reward earned at an unlock threshold: the
// resolved entry goes into the inventory and the claim is recorded so it
// cannot be taken twice.
//
// Postcondition: Returns ErrUnavailable for a reward the catalog cannot
// resolve; claiming an already claimed reward is an error and changes
// nothing.
func (s *Session) ClaimUnlock(cat *catalog.Catalog, reward catalog.Reward, at int) error {
	entry := resolveReward(cat, reward)
	if entry == nil {
		return fmt.Errorf("%w: unlock reward %q", ErrUnavailable, reward.Name)
	}
	key := claimKey(entry, at)
	return s.Apply(func(st *character.State) error {
		if st.RewardClaimed(key) {
			return fmt.Errorf("session: reward %s already claimed", key)
		}
		if err := st.AddInventory(entry.Category, entry.ID, reward.Qty); err != nil {
			return err
		}
		st.ClaimReward(key)
		return nil
	})
}

// UnclaimUnlock undoes ClaimUnlock: the reward units leave the inventory
// and the claim key is cleared.
func (s *Session) UnclaimUnlock(cat *catalog.Catalog, reward catalog.Reward, at int) error {
	entry := resolveReward(cat, reward)
	if entry == nil {
		return fmt.Errorf("%w: unlock reward %q", ErrUnavailable, reward.Name)
	}
	key := claimKey(entry, at)
	return s.Apply(func(st *character.State) error {
		if !st.RewardClaimed(key) {
			return fmt.Errorf("session: reward %s is not claimed", key)
		}
		if err := st.AdjustInventory(entry.Category, entry.ID, -reward.Qty); err != nil {
			return err
		}
		st.UnclaimReward(key)
		return nil
	})
}

// resolveReward finds the catalog entry a reward points at, searching the
// bonus-eligible categories for name-only rewards.
func resolveReward(cat *catalog.Catalog, reward catalog.Reward) *catalog.Entry {
	if reward.Ref != nil {
		return cat.Resolve(*reward.Ref, catalog.ResolveOptions{})
	}
	for _, category := range cat.Registry().BonusEligible() {
		if e := cat.GetByName(category, reward.Name); e != nil {
			return e
		}
	}
	return nil
}

func claimKey(entry *catalog.Entry, at int) string {
	return fmt.Sprintf("%s@%d", entry.Key(), at)
}
