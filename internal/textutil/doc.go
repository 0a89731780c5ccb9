// Package textutil provides review text cleaning, word-count similarity for
// near-duplicate detection, and filename sanitization.
//
// Cleaning is Turkish-aware: lowercasing follows Turkish casing rules (İ to i,
// I to ı) and the Turkish alphabet survives symbol stripping.
package textutil
