package vocabulary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"reviewlens/internal/aspect"
	"reviewlens/internal/labelcodec"
)

// MaxReasons caps the reason tags kept per leaf, applied before vocabulary
// filtering.
const MaxReasons = 3

// Leaf key spellings. Older annotation prompts used the Turkish keys.
const (
	keySentiment       = "sentiment"
	keyReasons         = "reasons"
	legacyKeySentiment = "duygu"
	legacyKeyReasons   = "alt_neden"
)

// ErrParse marks payloads that cannot be decoded into a top-level mapping.
var ErrParse = errors.New("annotation payload parse error")

// ParseError reports a structural decode failure. Raw keeps the payload
// verbatim for the diagnostic log.
type ParseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

// Leaf is one validated aspect label.
type Leaf struct {
	Sentiment labelcodec.Sentiment `json:"sentiment"`
	Reasons   []string             `json:"reasons"`
}

// IssueKind classifies a per-review validation problem.
type IssueKind string

const (
	// IssueInvalidShape marks a review entry that looks like a single leaf
	// instead of an aspect map.
	IssueInvalidShape IssueKind = "invalid_shape"
	// IssueInvalidEntry marks a review entry that is not an object.
	IssueInvalidEntry IssueKind = "invalid_entry"
)

// Issue records a review-level problem. The review is excluded from the
// result but the rest of the payload is still used.
type Issue struct {
	ReviewID string    `json:"review_id"`
	Kind     IssueKind `json:"kind"`
	Detail   string    `json:"detail,omitempty"`
}

// Result is the validated content of one annotation payload.
type Result struct {
	// Reviews maps review id to its surviving aspect leaves. Reviews whose
	// leaves were all dropped map to an empty, non-nil map.
	Reviews map[string]map[aspect.ID]Leaf
	Issues  []Issue
}

// Validator checks annotation payloads against a Table.
type Validator struct {
	table *Table
}

// NewValidator returns a Validator using table, or the built-in table when nil.
func NewValidator(table *Table) *Validator {
	if table == nil {
		table = Default()
	}
	return &Validator{table: table}
}

// Table returns the vocabulary the validator checks against.
func (v *Validator) Table() *Table {
	return v.table
}

// Parse decodes and validates a raw annotation payload of the shape
// {review_id: {aspect_id: {"sentiment": 1|3, "reasons": [...]}}}.
func (v *Validator) Parse(raw []byte) (Result, error) {
	top, err := decodeObject(raw)
	if err != nil {
		stripped := stripCodeFence(raw)
		if !bytes.Equal(stripped, raw) {
			if fenced, ferr := decodeObject(stripped); ferr == nil {
				top, err = fenced, nil
			}
		}
	}
	if err != nil {
		return Result{}, err
	}
	return v.Validate(top), nil
}

// Validate applies the leaf rules to an already decoded top-level mapping.
func (v *Validator) Validate(top map[string]any) Result {
	result := Result{Reviews: make(map[string]map[aspect.ID]Leaf, len(top))}
	for _, reviewID := range sortedKeys(top) {
		entry, ok := top[reviewID].(map[string]any)
		if !ok {
			result.Issues = append(result.Issues, Issue{
				ReviewID: reviewID,
				Kind:     IssueInvalidEntry,
				Detail:   fmt.Sprintf("expected object, got %s", jsonKind(top[reviewID])),
			})
			continue
		}
		if looksLikeLeaf(entry) {
			result.Issues = append(result.Issues, Issue{
				ReviewID: reviewID,
				Kind:     IssueInvalidShape,
				Detail:   "review entry is a single leaf without aspect keys",
			})
			continue
		}
		result.Reviews[reviewID] = v.validateAspects(entry)
	}
	return result
}

func (v *Validator) validateAspects(entry map[string]any) map[aspect.ID]Leaf {
	leaves := make(map[aspect.ID]Leaf)
	for _, key := range sortedKeys(entry) {
		if !isDecimal(key) {
			continue
		}
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		id := aspect.ID(n)
		if _, dup := leaves[id]; dup {
			continue
		}
		leaf, ok := v.validateLeaf(id, entry[key])
		if !ok {
			continue
		}
		leaves[id] = leaf
	}
	return leaves
}

func (v *Validator) validateLeaf(id aspect.ID, value any) (Leaf, bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return Leaf{}, false
	}
	rawSentiment, ok := lookup(obj, keySentiment, legacyKeySentiment)
	if !ok {
		return Leaf{}, false
	}
	sentiment, ok := polarSentiment(rawSentiment)
	if !ok {
		return Leaf{}, false
	}
	rawReasons, _ := lookup(obj, keyReasons, legacyKeyReasons)
	reasons := coerceReasons(rawReasons)
	if len(reasons) > MaxReasons {
		reasons = reasons[:MaxReasons]
	}
	kept := reasons[:0]
	for _, reason := range reasons {
		if v.table.Allowed(id, reason) {
			kept = append(kept, reason)
		}
	}
	if len(kept) == 0 {
		return Leaf{}, false
	}
	return Leaf{Sentiment: sentiment, Reasons: slices.Clip(kept)}, true
}

// looksLikeLeaf flags entries carrying both leaf keys and at most one other key.
func looksLikeLeaf(entry map[string]any) bool {
	if len(entry) > 3 {
		return false
	}
	_, hasSentiment := lookup(entry, keySentiment, legacyKeySentiment)
	_, hasReasons := lookup(entry, keyReasons, legacyKeyReasons)
	return hasSentiment && hasReasons
}

func lookup(obj map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// polarSentiment accepts only the numeric values 1 and 3. Neutral leaves are
// not expected from the annotator.
func polarSentiment(value any) (labelcodec.Sentiment, bool) {
	num, ok := value.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	switch labelcodec.Sentiment(f) {
	case labelcodec.Negative:
		return labelcodec.Negative, true
	case labelcodec.Positive:
		return labelcodec.Positive, true
	default:
		return 0, false
	}
}

// coerceReasons turns null into no reasons, a lone string into a one-element
// list, and keeps string or numeric list items as strings.
func coerceReasons(value any) []string {
	switch val := value.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			switch it := item.(type) {
			case string:
				out = append(out, it)
			case json.Number:
				out = append(out, it.String())
			}
		}
		return out
	default:
		return nil
	}
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, &ParseError{Reason: "json decode failed", Raw: string(raw), Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Reason: "trailing data after top-level value", Raw: string(raw)}
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, &ParseError{Reason: fmt.Sprintf("top-level value is not a mapping (%s)", jsonKind(data)), Raw: string(raw)}
	}
	return obj, nil
}

func stripCodeFence(raw []byte) []byte {
	text := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(text, "```") {
		return raw
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return []byte(strings.TrimSpace(text))
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
