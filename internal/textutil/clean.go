package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	htmlPattern   = regexp.MustCompile(`(?s)<.*?>`)
	emojiPattern  = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2702}-\x{27B0}\x{24C2}-\x{1F251}]+`)
	urlPattern    = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+)`)
	emailPattern  = regexp.MustCompile(`\S+@\S+`)
	phonePattern  = regexp.MustCompile(`\+?\d[\d\s\-]{8,}\d`)
	symbolPattern = regexp.MustCompile(`[^0-9a-zA-ZçğıöşüÇĞİÖŞÜ\s.,!?;:()'"\-]`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

var turkishLower = cases.Lower(language.Turkish)

// CleanReview normalises review text before it is sent to a labelling
// backend: Turkish-aware lowercasing, removal of markup, emoji, links, e-mail
// addresses, phone numbers and stray symbols, and squeezing of repeated
// characters and punctuation.
func CleanReview(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	t := turkishLower.String(norm.NFC.String(text))
	t = htmlPattern.ReplaceAllString(t, " ")
	t = emojiPattern.ReplaceAllString(t, " ")
	t = urlPattern.ReplaceAllString(t, " ")
	t = emailPattern.ReplaceAllString(t, " ")
	t = phonePattern.ReplaceAllString(t, " ")
	t = symbolPattern.ReplaceAllString(t, " ")
	t = squeezeRepeats(t)
	t = collapsePunctuation(t)
	t = spacePattern.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// squeezeRepeats keeps at most two consecutive copies of any non-space rune.
func squeezeRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run > 2 && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collapsePunctuation reduces runs of the same punctuation mark to one.
func collapsePunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if r == prev && strings.ContainsRune("!?.,;:", r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
