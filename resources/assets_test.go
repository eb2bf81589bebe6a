package resources

import "testing"

func TestLogosAreEmbedded(t *testing.T) {
	for _, name := range []string{IconActive, IconPaused, IconFinished} {
		resource, err := Logo(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(resource.Content()) == 0 {
			t.Fatalf("%s is empty", name)
		}
		again, _ := Logo(name)
		if again != resource {
			t.Fatalf("%s was not cached", name)
		}
	}

	if _, err := Logo("missing.png"); err == nil {
		t.Fatalf("expected error for unknown logo")
	}
}
