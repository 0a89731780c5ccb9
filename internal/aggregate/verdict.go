package aggregate

import (
	"strings"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labelcodec"
)

// Qualitative verdicts attached to each aspect before it reaches the
// summarizer, so raw counts are never the only signal.
const (
	VerdictVeryPositive   = "Çok olumlu"
	VerdictMostlyPositive = "Ağırlıklı olumlu"
	VerdictVeryNegative   = "Çok olumsuz"
	VerdictMostlyNegative = "Ağırlıklı olumsuz"
	VerdictMixed          = "Karışık"
)

// Verdict labels the balance of positive and negative mentions.
func Verdict(s AspectSummary) string {
	pos, neg := float64(s.Positive), float64(s.Negative)
	switch {
	case pos > neg*2 && s.Positive >= 5:
		return VerdictVeryPositive
	case pos > neg*1.5:
		return VerdictMostlyPositive
	case neg > pos*2 && s.Negative >= 5:
		return VerdictVeryNegative
	case neg > pos*1.5:
		return VerdictMostlyNegative
	default:
		return VerdictMixed
	}
}

// Render formats summaries as one line per aspect, e.g.
//
//   - Temizlik: Çok olumlu (övülen: oda temiz | şikayet: koku kotu)
func Render(summaries []AspectSummary) string {
	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s.Mentions() == 0 {
			continue
		}
		name := s.Key
		if a, ok := aspect.Lookup(s.Aspect); ok {
			name = a.Display
		}
		line := "- " + name + ": " + Verdict(s)
		praised := displayReasons(s.PositiveReasons)
		complaints := displayReasons(s.NegativeReasons)
		switch {
		case len(praised) > 0 && len(complaints) > 0:
			line += " (övülen: " + strings.Join(praised, ", ") + " | şikayet: " + strings.Join(complaints, ", ") + ")"
		case len(praised) > 0:
			line += " (övülen: " + strings.Join(praised, ", ") + ")"
		case len(complaints) > 0:
			line += " (şikayet: " + strings.Join(complaints, ", ") + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// DisplayReason turns a reason identifier into readable text.
func DisplayReason(id string) string {
	if code, ok := labelcodec.ParseReason(id); ok {
		id = code.Key()
	}
	return strings.ReplaceAll(id, "_", " ")
}

func displayReasons(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, DisplayReason(id))
	}
	return out
}
