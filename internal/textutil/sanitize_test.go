package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	tests := map[string]string{
		"Güneş Otel & Spa":   "gunes_otel_spa",
		"  ":                 "unknown",
		"İstanbul Çırağan":   "istanbul_ciragan",
		"Hotel-42 (Antalya)": "hotel-42_antalya",
		"***":                "unknown",
	}
	for in, want := range tests {
		if got := SanitizeToken(in); got != want {
			t.Fatalf("SanitizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}
