package aggregate

import (
	"strings"
	"testing"

	"reviewlens/internal/aspect"
)

func TestVerdictThresholds(t *testing.T) {
	tests := []struct {
		pos, neg int
		want     string
	}{
		{5, 0, VerdictVeryPositive},
		{4, 0, VerdictMostlyPositive},
		{4, 2, VerdictMostlyPositive},
		{3, 2, VerdictMixed},
		{0, 5, VerdictVeryNegative},
		{2, 3, VerdictMixed},
		{2, 4, VerdictMostlyNegative},
		{3, 3, VerdictMixed},
		{0, 0, VerdictMixed},
	}
	for _, tt := range tests {
		got := Verdict(AspectSummary{Positive: tt.pos, Negative: tt.neg})
		if got != tt.want {
			t.Fatalf("Verdict(%d,%d) = %q, want %q", tt.pos, tt.neg, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	summaries := []AspectSummary{
		{Aspect: aspect.Cleanliness, Key: "temizlik", Positive: 6, PositiveReasons: []string{"oda_temiz"}, NegativeReasons: []string{}},
		{Aspect: aspect.Staff, Key: "personel", Positive: 1, Negative: 1, PositiveReasons: []string{"servis"}, NegativeReasons: []string{"kaba", "ilgisiz"}},
		{Aspect: aspect.WiFi, Key: "wifi"},
	}
	got := Render(summaries)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", got)
	}
	if lines[0] != "- Temizlik: Çok olumlu (övülen: oda temiz)" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "- Personel: Karışık (övülen: servis | şikayet: kaba, ilgisiz)" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}
