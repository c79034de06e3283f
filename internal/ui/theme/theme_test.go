package theme

import "testing"

func TestByNameAndNext(t *testing.T) {
	for _, th := range Available() {
		got, ok := ByName(th.Name)
		if !ok || got.Name != th.Name {
			t.Errorf("ByName(%q) = %q, %v", th.Name, got.Name, ok)
		}
	}
	if _, ok := ByName("solarized"); ok {
		t.Error("unknown theme found")
	}

	seen := map[string]bool{}
	name := Slate.Name
	for range Available() {
		seen[name] = true
		name = Next(name).Name
	}
	if name != Slate.Name || len(seen) != len(Available()) {
		t.Errorf("Next did not cycle through every theme: ended at %q, saw %v", name, seen)
	}
	if Next("unknown").Name != Slate.Name {
		t.Error("Next of unknown theme should start over")
	}
}
