package inventory

import (
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/grammar"
)

// Inventory is the ordered collection of items owned by one combatant.
type Inventory struct {
	items []*Item
}

// New returns an inventory holding items in order.
func New(items ...*Item) *Inventory {
	return &Inventory{items: append([]*Item(nil), items...)}
}

// Add appends it.
func (inv *Inventory) Add(it *Item) { inv.items = append(inv.items, it) }

// Items returns a copy of the held items in order.
func (inv *Inventory) Items() []*Item { return append([]*Item(nil), inv.items...) }

// Len returns the number of held items.
func (inv *Inventory) Len() int { return len(inv.items) }

// Weapons returns the held weapons in order.
func (inv *Inventory) Weapons() []*Item {
	return inv.filter(func(it *Item) bool { return it.IsWeapon() })
}

// NonWeapons returns the held items that are not weapons, in order.
func (inv *Inventory) NonWeapons() []*Item {
	return inv.filter(func(it *Item) bool { return !it.IsWeapon() })
}

// IDs returns the catalog ids of the held items, for serialisation.
func (inv *Inventory) IDs() []string {
	ids := make([]string, len(inv.items))
	for i, it := range inv.items {
		ids[i] = it.ID
	}
	return ids
}

// Summary renders the held items as prose: "a Dagger, an Old Mask and a Sword".
// An empty inventory renders as "nothing".
func (inv *Inventory) Summary() string {
	phrases := make([]string, len(inv.items))
	for i, it := range inv.items {
		phrases[i] = grammar.WithArticle(it.Display())
	}
	switch len(phrases) {
	case 0:
		return "nothing"
	case 1:
		return phrases[0]
	default:
		return strings.Join(phrases[:len(phrases)-1], ", ") + " and " + phrases[len(phrases)-1]
	}
}

func (inv *Inventory) filter(keep func(*Item) bool) []*Item {
	var out []*Item
	for _, it := range inv.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
