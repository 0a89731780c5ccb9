package textutil

import "testing"

func TestCleanReview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", ""},
		{"turkish lowercase", "İSTANBUL'DA IŞIKLI ODA", "istanbul'da ışıklı oda"},
		{"html", "Oda <b>çok</b> temizdi", "oda çok temizdi"},
		{"url and email", "bakın www.otel.com veya info@otel.com yazın", "bakın veya yazın"},
		{"phone", "arayın +90 532 123 45 67 lütfen", "arayın lütfen"},
		{"emoji", "harika 😀😀 otel", "harika otel"},
		{"symbols", "fiyat 100₺ & kahvaltı #güzel", "fiyat 100 kahvaltı güzel"},
		{"repeated chars", "çoooook güzeeeel", "çook güzeel"},
		{"repeated punctuation", "süper!!!! ama pahalı...", "süper! ama pahalı."},
		{"mixed punctuation kept", "neden?! bilmem", "neden?! bilmem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanReview(tt.in); got != tt.want {
				t.Fatalf("CleanReview(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
