package aspect

import "testing"

func TestTableIsDenseAndOrdered(t *testing.T) {
	all := All()
	if len(all) != Count {
		t.Fatalf("expected %d aspects, got %d", Count, len(all))
	}
	seen := make(map[string]bool)
	for i, a := range all {
		if a.ID != ID(i+1) {
			t.Fatalf("aspect at index %d has id %d", i, a.ID)
		}
		if a.Key == "" || a.Name == "" || a.Display == "" {
			t.Fatalf("aspect %d has blank identifiers: %+v", a.ID, a)
		}
		if seen[a.Key] {
			t.Fatalf("duplicate key %q", a.Key)
		}
		seen[a.Key] = true
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want ID
		ok   bool
	}{
		{"1", Cleanliness, true},
		{"25", Activities, true},
		{"0", 0, false},
		{"26", 26, false},
		{"temizlik", Cleanliness, true},
		{"staff", Staff, true},
		{"nope", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Fatalf("Parse(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFromIndex(t *testing.T) {
	if id, ok := FromIndex(0); !ok || id != Cleanliness {
		t.Fatalf("FromIndex(0) = %d,%v", id, ok)
	}
	if _, ok := FromIndex(Count); ok {
		t.Fatal("expected index 25 to be out of range")
	}
	if Staff.Index() != 5 {
		t.Fatalf("Staff.Index() = %d", Staff.Index())
	}
	if Noise.String() != "gurultu" {
		t.Fatalf("Noise.String() = %q", Noise.String())
	}
}
