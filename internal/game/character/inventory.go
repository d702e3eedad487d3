package character

import "fmt"

// InventoryEntry is one coalesced stack of a carried item.
type InventoryEntry struct {
	// Kind is the catalog category of the reference.
	Kind string `json:"kind"`
	// ID is the catalog id within Kind.
	ID int `json:"id"`
	// Qty is the carried count; entries never persist at 0.
	Qty int `json:"qty"`
}

// AddInventory adds qty units of (kind, id), coalescing with an existing
// stack.
//
// Precondition: qty > 0, kind non-empty, id > 0.
// Postcondition: exactly one entry exists for (kind, id) with the summed
// quantity.
func (s *State) AddInventory(kind string, id, qty int) error {
	if kind == "" || id <= 0 {
		return fmt.Errorf("character: inventory reference (%q, %d) is invalid", kind, id)
	}
	if qty <= 0 {
		return fmt.Errorf("character: inventory quantity must be > 0, got %d", qty)
	}
	for i := range s.Inventory {
		if s.Inventory[i].Kind == kind && s.Inventory[i].ID == id {
			s.Inventory[i].Qty += qty
			return nil
		}
	}
	s.Inventory = append(s.Inventory, InventoryEntry{Kind: kind, ID: id, Qty: qty})
	return nil
}

// AdjustInventory changes the quantity of an existing stack by delta.
//
// Postcondition: a stack reaching 0 (or below) is removed; adjusting a
// missing stack with a positive delta creates it.
func (s *State) AdjustInventory(kind string, id, delta int) error {
	for i := range s.Inventory {
		if s.Inventory[i].Kind == kind && s.Inventory[i].ID == id {
			s.Inventory[i].Qty += delta
			if s.Inventory[i].Qty <= 0 {
				s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			}
			return nil
		}
	}
	if delta > 0 {
		return s.AddInventory(kind, id, delta)
	}
	return fmt.Errorf("character: no inventory entry for (%q, %d)", kind, id)
}

// RemoveInventory deletes a stack outright regardless of quantity.
func (s *State) RemoveInventory(kind string, id int) {
	for i := range s.Inventory {
		if s.Inventory[i].Kind == kind && s.Inventory[i].ID == id {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return
		}
	}
}

// InventoryQty returns the carried count for (kind, id), 0 when absent.
func (s *State) InventoryQty(kind string, id int) int {
	for _, e := range s.Inventory {
		if e.Kind == kind && e.ID == id {
			return e.Qty
		}
	}
	return 0
}
