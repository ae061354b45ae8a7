package categories_test

import (
	"testing"

	"github.com/caretide/triage/internal/categories"
)

func TestCanonicalTaxonomy(t *testing.T) {
	if len(categories.Canonical) != 10 {
		t.Fatalf("Canonical has %d entries, want 10", len(categories.Canonical))
	}

	seen := make(map[string]bool, len(categories.Canonical))
	hasFallback := false
	for _, name := range categories.Canonical {
		if seen[name] {
			t.Errorf("duplicate canonical category %q", name)
		}
		seen[name] = true
		if name == categories.Fallback {
			hasFallback = true
		}
	}

	if !hasFallback {
		t.Errorf("Canonical does not include fallback %q", categories.Fallback)
	}
}
