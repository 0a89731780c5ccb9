// Package labelcodec packs an (aspect sentiment, reason code) pair into the
// single class id emitted per aspect by the classification service.
//
// The packing is classID = 1 + (sentiment-1)*7 + (reason-1), giving ids 1..21.
// Class id 0 means the aspect was not mentioned.
package labelcodec

import (
	"errors"
	"fmt"

	"reviewlens/internal/aspect"
)

// Sentiment is the polarity of one aspect mention.
type Sentiment int

const (
	Negative Sentiment = 1
	Neutral  Sentiment = 2
	Positive Sentiment = 3
)

// Valid reports whether s is one of the three polarities.
func (s Sentiment) Valid() bool {
	return s >= Negative && s <= Positive
}

func (s Sentiment) String() string {
	switch s {
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	default:
		return fmt.Sprintf("sentiment(%d)", int(s))
	}
}

// ReasonCode is the coarse reason category attached to a classifier mention.
type ReasonCode int

const (
	Absence ReasonCode = iota + 1
	Quality
	Accessibility
	Service
	Price
	PositiveQuality
	NeutralInformation
)

// ReasonCount is the number of reason categories per sentiment.
const ReasonCount = 7

var reasonKeys = [ReasonCount]string{"yokluk", "kalite", "erisim", "servis", "fiyat", "olumlu_kalite", "notr_bilgi"}

var reasonNames = [ReasonCount]string{"absence", "quality", "accessibility", "service", "price", "positive_quality", "neutral_information"}

// Valid reports whether r is one of the seven categories.
func (r ReasonCode) Valid() bool {
	return r >= Absence && r <= NeutralInformation
}

// Key returns the wire identifier shared with aggregated summaries.
func (r ReasonCode) Key() string {
	if !r.Valid() {
		return ""
	}
	return reasonKeys[r-1]
}

// Name returns the English identifier.
func (r ReasonCode) Name() string {
	if !r.Valid() {
		return ""
	}
	return reasonNames[r-1]
}

func (r ReasonCode) String() string {
	if !r.Valid() {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return r.Key()
}

// ParseReason resolves a wire key or English name.
func ParseReason(value string) (ReasonCode, bool) {
	for i := range ReasonCount {
		if reasonKeys[i] == value || reasonNames[i] == value {
			return ReasonCode(i + 1), true
		}
	}
	return 0, false
}

// NotMentioned is the class id for an aspect absent from a review.
const NotMentioned = 0

// MaxClassID is the largest valid packed class id.
const MaxClassID = 3 * ReasonCount

// ErrInvalidClassID is returned when a class id lies outside [0, 21].
var ErrInvalidClassID = errors.New("invalid class id")

// Pair is a decoded class id. Mentioned is false for class id 0.
type Pair struct {
	Mentioned bool
	Sentiment Sentiment
	Reason    ReasonCode
}

// Encode packs a pair. Out-of-domain inputs degrade to NotMentioned rather
// than producing a colliding id.
func Encode(s Sentiment, r ReasonCode) int {
	if !s.Valid() || !r.Valid() {
		return NotMentioned
	}
	return 1 + (int(s)-1)*ReasonCount + (int(r) - 1)
}

// Decode unpacks a class id. Id 0 yields a not-mentioned pair; ids outside
// [0, 21] return ErrInvalidClassID.
func Decode(classID int) (Pair, error) {
	if classID == NotMentioned {
		return Pair{}, nil
	}
	if classID < 1 || classID > MaxClassID {
		return Pair{}, fmt.Errorf("%w: %d", ErrInvalidClassID, classID)
	}
	idx := classID - 1
	return Pair{
		Mentioned: true,
		Sentiment: Sentiment(idx/ReasonCount + 1),
		Reason:    ReasonCode(idx%ReasonCount + 1),
	}, nil
}

// ErrVectorLength is returned when a classifier vector does not carry exactly
// one class id per aspect.
var ErrVectorLength = errors.New("classifier vector length mismatch")

// DecodeVector decodes one classifier vector into the mentioned aspects.
func DecodeVector(classIDs []int) (map[aspect.ID]Pair, error) {
	if len(classIDs) != aspect.Count {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(classIDs), aspect.Count)
	}
	out := make(map[aspect.ID]Pair)
	for i, classID := range classIDs {
		pair, err := Decode(classID)
		if err != nil {
			id, _ := aspect.FromIndex(i)
			return nil, fmt.Errorf("aspect %s: %w", id, err)
		}
		if !pair.Mentioned {
			continue
		}
		id, _ := aspect.FromIndex(i)
		out[id] = pair
	}
	return out, nil
}
