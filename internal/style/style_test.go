package style

import (
	"strings"
	"testing"
)

func TestCatalogOrder(t *testing.T) {
	want := []string{"Classic Pencil", "Charcoal", "Pen & Ink", "Colored Pencil", "Watercolor Sketch"}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(all), len(want))
	}
	for i, label := range want {
		if all[i].Label != label {
			t.Errorf("All()[%d].Label = %q, want %q", i, all[i].Label, label)
		}
		if strings.TrimSpace(all[i].Fragment) == "" {
			t.Errorf("style %q has empty fragment", label)
		}
	}
}

func TestDefaultIsFirst(t *testing.T) {
	if Default() != Pencil {
		t.Errorf("Default() = %q, want %q", Default().Label, Pencil.Label)
	}
	if Index(Default()) != 0 {
		t.Errorf("Index(Default()) = %d, want 0", Index(Default()))
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0] = Watercolor
	if Default() != Pencil {
		t.Error("mutating All() result changed the catalog")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Style
	}{
		{"charcoal", Charcoal},
		{"Charcoal", Charcoal},
		{"  pen & ink ", Ink},
		{"colored-pencil", ColoredPencil},
		{"Watercolor Sketch", Watercolor},
		{"PENCIL", Pencil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.name, got.Label, tt.want.Label)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("oil")
	if err == nil {
		t.Fatal("expected error for unknown style")
	}
	if !strings.Contains(err.Error(), "charcoal") {
		t.Errorf("error should list valid keys, got %q", err.Error())
	}
}
