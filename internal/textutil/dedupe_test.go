package textutil

import (
	"math"
	"slices"
	"testing"
)

func TestWordsKeepsTurkishLetters(t *testing.T) {
	got := Words("Çok GÜZEL bir şehir, ışıl ışıl! ve")
	want := []string{"çok", "güzel", "bir", "şehir", "ışıl", "ışıl"}
	if !slices.Equal(got, want) {
		t.Fatalf("Words = %v, want %v", got, want)
	}
}

func TestSimilarity(t *testing.T) {
	a := "oda temiz personel güler yüzlü"
	if sim := Similarity(a, "Oda temiz, personel güler yüzlü!"); math.Abs(sim-1) > 1e-9 {
		t.Fatalf("expected identical word counts, got %v", sim)
	}
	if sim := Similarity(a, "havuz soğuk kahvaltı kötü"); sim != 0 {
		t.Fatalf("expected disjoint texts, got %v", sim)
	}
	if sim := Similarity("a b !", a); sim != 0 {
		t.Fatalf("expected 0 without usable words, got %v", sim)
	}
}

func TestDuplicateIndex(t *testing.T) {
	idx := NewDuplicateIndex(0.9)
	if idx.Check("oda temiz personel güler yüzlü") {
		t.Fatal("first text cannot be a duplicate")
	}
	if !idx.Check("ODA TEMİZ personel güler yüzlü!!") {
		t.Fatal("expected near-identical text to be flagged")
	}
	if idx.Check("havuz soğuk kahvaltı kötü") {
		t.Fatal("unrelated text flagged")
	}
	if len(idx.kept) != 2 {
		t.Fatalf("kept = %d, want 2", len(idx.kept))
	}
	if NewDuplicateIndex(0).Check("x") || (*DuplicateIndex)(nil).Check("oda temiz") {
		t.Fatal("disabled index should never flag")
	}
}
