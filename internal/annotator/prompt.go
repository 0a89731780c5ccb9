package annotator

import (
	"fmt"
	"strings"

	"reviewlens/internal/aspect"
	"reviewlens/internal/vocabulary"
)

const promptIntro = `Sen bir otel yorumu etiketleme modelisin.

Görev:
- 25 aspect için SADECE yorumda açıkça bahsedilenleri etiketle.
- Her etiket için {"sentiment": int, "reasons": [str, ...]} üret.
- sentiment: 1 = negatif, 3 = pozitif. Nötr (2) ASLA yazma.
- reasons: aşağıdaki sözlükten, SADECE o aspect'in kendi listesinden 1-3 etiket.
- Serbest metin yazma. Tahmin veya varsayım yapma.
- sentiment=1 ise pozitif etiket, sentiment=3 ise negatif etiket seçme.`

const promptOutput = `ÇIKTI KURALI:
- Girdi bir JSON listesidir: [{"id": 0, "text": "..."}, ...]
- Çıktı tek bir JSON OBJE olmalı: dış anahtarlar yorum id'sinin string hali ("0", "1", ...),
  iç anahtarlar aspect numarası (string), değerler {"sentiment": int, "reasons": [str, ...]}.
- Hiç aspect içermeyen yorum için boş obje yaz: {"7": {}}

ÖRNEK:
Yorum: "Yemekler lezzetliydi ama çeşit azdı."
Çıktı: {"3": {"8": {"sentiment": 3, "reasons": ["lezzetli"]}, "9": {"sentiment": 1, "reasons": ["cesit_az"]}}}`

// SystemPrompt renders the annotation instructions for a vocabulary table.
func SystemPrompt(table *vocabulary.Table) string {
	var b strings.Builder
	b.WriteString(promptIntro)
	b.WriteString("\n\nASPECTLER (numara - anahtar: kapsam):\n")
	for _, a := range aspect.All() {
		fmt.Fprintf(&b, "%d - %s: %s\n", a.ID, a.Key, a.Scope)
	}
	b.WriteString("\nETİKET SÖZLÜĞÜ (SADECE BUNLARI KULLAN):\n")
	for _, a := range aspect.All() {
		tags := table.Tags(a.ID)
		if len(tags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%d) %s: %s\n", a.ID, a.Key, strings.Join(tags, ", "))
	}
	b.WriteString("\n")
	b.WriteString(promptOutput)
	return b.String()
}
