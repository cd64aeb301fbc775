package shortcuts

import (
	"strings"
	"testing"
)

func TestAllReturnsPopulatedCatalogue(t *testing.T) {
	t.Parallel()

	all := All()
	if len(all) == 0 {
		t.Fatal("expected a non-empty shortcut catalogue")
	}
	for _, shortcut := range all {
		if shortcut.Name == "" || shortcut.Icon == "" {
			t.Fatalf("incomplete shortcut: %+v", shortcut)
		}
		if !strings.HasPrefix(shortcut.URL, "https://") {
			t.Fatalf("shortcut URL not https: %+v", shortcut)
		}
	}
}

func TestAllReturnsACopy(t *testing.T) {
	t.Parallel()

	first := All()
	first[0].Name = "tampered"

	if All()[0].Name == "tampered" {
		t.Fatal("All() must not expose the underlying catalogue")
	}
}
