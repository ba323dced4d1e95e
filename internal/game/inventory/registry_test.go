package inventory_test

import (
	"testing"

	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// TestRegistry_RegisterItem_Lookup verifies that a registered Item can be
// retrieved by ID.
func TestRegistry_RegisterItem_Lookup(t *testing.T) {
	r := inventory.NewRegistry()
	it := &inventory.Item{ID: "sword", Name: "Sword", Kind: inventory.KindWeapon}
	if err := r.RegisterItem(it); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := r.Item("sword")
	if !ok || got != it {
		t.Fatalf("expected registered item, got %+v (ok=%v)", got, ok)
	}
}

// TestRegistry_RegisterItem_CollisionError verifies that registering two
// items with the same ID returns an error on the second registration.
func TestRegistry_RegisterItem_CollisionError(t *testing.T) {
	r := inventory.NewRegistry()
	it := &inventory.Item{ID: "sword", Name: "Sword"}
	if err := r.RegisterItem(it); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if err := r.RegisterItem(it); err == nil {
		t.Fatal("expected collision error on second register, got nil")
	}
}

// TestRegistry_Items_RegistrationOrder verifies that Items preserves the
// order items were registered in.
func TestRegistry_Items_RegistrationOrder(t *testing.T) {
	r := inventory.NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		if err := r.RegisterItem(&inventory.Item{ID: id, Name: id}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	all := r.Items()
	if len(all) != 3 || all[0].ID != "c" || all[1].ID != "a" || all[2].ID != "b" {
		t.Fatalf("unexpected order: %v", all)
	}
}

// TestRegistry_Resolve_UnknownID verifies that resolving an unregistered ID
// fails.
func TestRegistry_Resolve_UnknownID(t *testing.T) {
	r := inventory.NewRegistry()
	if _, err := r.Resolve([]string{"does-not-exist"}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
