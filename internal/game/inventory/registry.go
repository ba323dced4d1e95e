package inventory

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/action"
)

// Registry holds every loaded item indexed by ID.
type Registry struct {
	items map[string]*Item
	order []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// RegisterItem adds it to the registry.
//
// Precondition:  it must not be nil.
// Postcondition: Item(it.ID) returns (it, true); returns error if it.ID is already registered.
func (r *Registry) RegisterItem(it *Item) error {
	if _, exists := r.items[it.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %q already registered", it.ID)
	}
	r.items[it.ID] = it
	r.order = append(r.order, it.ID)
	return nil
}

// Item returns the item for the given id and whether it was found.
func (r *Registry) Item(id string) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Items returns every item in registration order.
func (r *Registry) Items() []*Item {
	out := make([]*Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Resolve looks up each id in order.
//
// Postcondition: returns an error naming the first unknown id.
func (r *Registry) Resolve(ids []string) ([]*Item, error) {
	out := make([]*Item, 0, len(ids))
	for _, id := range ids {
		it, ok := r.items[id]
		if !ok {
			return nil, fmt.Errorf("inventory: unknown item %q", id)
		}
		out = append(out, it)
	}
	return out, nil
}

// Load validates defs, resolves their actions against actions and registers
// the resulting items.
func (r *Registry) Load(defs []*ItemDef, actions *action.Catalog) error {
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}
		acts, err := actions.Resolve(d.Actions)
		if err != nil {
			return fmt.Errorf("item %q: %w", d.ID, err)
		}
		if err := r.RegisterItem(&Item{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Kind:        d.Kind,
			Style:       d.Style,
			Actions:     acts,
		}); err != nil {
			return err
		}
	}
	return nil
}
