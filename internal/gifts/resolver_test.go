package gifts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"GiftChart/internal/model"
)

func TestResolve_Aliases(t *testing.T) {
	r := NewResolver(nil)
	tests := map[string]string{
		"plush pepe":          "Plush Pepe",
		"  Frog  ":            "Plush Pepe",
		"JITB":                "Jack-in-the-Box",
		"jack-in-the-box":     "Jack-in-the-Box",
		"crystal ball 12h":    "Crystal Ball",
		"Crystal Ball 12H":    "Crystal Ball",
		"durov":               "Durov's Cap",
		"Durov's Cap":         "Durov's Cap",
		"love candle":         "Love Candle",
		"lightsaber":          "Light Sword",
		"nail bracelet 12h  ": "Nail Bracelet",
	}
	for in, want := range tests {
		g, err := r.Resolve(in)
		if err != nil {
			t.Errorf("Resolve(%q): %v", in, err)
			continue
		}
		if g.Name != want {
			t.Errorf("Resolve(%q) = %q, want %q", in, g.Name, want)
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(nil)
	for _, in := range []string{"", "   ", "unicorn", "12h"} {
		if _, err := r.Resolve(in); !errors.Is(err, model.ErrGiftNotFound) {
			t.Errorf("Resolve(%q) should fail with ErrGiftNotFound, got %v", in, err)
		}
	}
}

func TestResolve_Catalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gifts.json")
	if err := os.WriteFile(path, []byte(`{"5936013938331222567":"Plush Pepe","5915521180483191380":"Snoop Dogg"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(catalog)

	g, err := r.Resolve("pepe")
	if err != nil {
		t.Fatal(err)
	}
	if g.ID != "5936013938331222567" {
		t.Errorf("unexpected id %q", g.ID)
	}
	if g, err := r.Resolve("snoop dogg"); err != nil || g.Name != "Snoop Dogg" {
		t.Errorf("catalog-only gift: %+v, %v", g, err)
	}
	// Alias targets missing from the catalog do not resolve.
	if _, err := r.Resolve("crystal"); !errors.Is(err, model.ErrGiftNotFound) {
		t.Errorf("expected ErrGiftNotFound, got %v", err)
	}
	if len(r.Names()) != 2 {
		t.Errorf("expected 2 names, got %v", r.Names())
	}
	if !r.HasIDs() {
		t.Error("catalog resolver should report ids")
	}
	if NewResolver(nil).HasIDs() {
		t.Error("built-in names carry no ids")
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for a missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte(`[1,2]`), 0o644)
	if _, err := LoadCatalog(path); err == nil {
		t.Error("expected error for a non-object catalog")
	}
}

func TestSuggest(t *testing.T) {
	r := NewResolver(nil)

	got := r.Suggest("magic thing", DefaultSuggestions)
	want := []string{"Crystal Ball", "Magic Potion", "Genie Lamp"}
	if len(got) != len(want) {
		t.Fatalf("Suggest = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggest[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := r.Suggest("heart", 2); len(got) != 2 || got[0] != "Heart Locket" {
		t.Errorf("limited suggestions = %v", got)
	}
	if got := r.Suggest("   ", 5); got != nil {
		t.Errorf("blank text should yield no suggestions, got %v", got)
	}
	if got := r.Suggest("zzzz", 5); len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"Plush Pepe 12h": "Plush Pepe",
		" plush pepe ":   "plush pepe",
		"12h":            "12h",
		"pepe 12h 12h":   "pepe 12h",
	}
	for in, want := range tests {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}
